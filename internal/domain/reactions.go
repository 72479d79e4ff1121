package domain

import "slices"

// ReactionState is a viewer's tri-state reaction to a tip.
type ReactionState string

// Reaction states.
const (
	ReactionNone     ReactionState = "none"
	ReactionLiked    ReactionState = "liked"
	ReactionDisliked ReactionState = "disliked"
)

// Reactions records which tips and updates one viewer has reacted to.
// It is device-scoped session state, not an identity mechanism: a
// viewer who clears their device state can react again, and reactions
// are not deduplicated across devices. It is therefore stored locally
// and never synced to the shared entity store.
//
// Invariant: a tip ID is never in both Liked and Disliked.
type Reactions struct {
	Liked    []string `json:"liked"`
	Disliked []string `json:"disliked"`
}

// TipState derives the viewer's reaction state for a tip.
func (r *Reactions) TipState(tipID string) ReactionState {
	if slices.Contains(r.Liked, tipID) {
		return ReactionLiked
	}
	if slices.Contains(r.Disliked, tipID) {
		return ReactionDisliked
	}
	return ReactionNone
}

// SetLiked moves the tip into the liked set, removing it from disliked.
func (r *Reactions) SetLiked(tipID string) {
	r.remove(tipID)
	r.Liked = append(r.Liked, tipID)
}

// SetDisliked moves the tip into the disliked set, removing it from liked.
func (r *Reactions) SetDisliked(tipID string) {
	r.remove(tipID)
	r.Disliked = append(r.Disliked, tipID)
}

// Clear removes the tip from both sets. Called on un-react and when the
// tip itself is deleted.
func (r *Reactions) Clear(tipID string) {
	r.remove(tipID)
}

func (r *Reactions) remove(tipID string) {
	r.Liked = slices.DeleteFunc(r.Liked, func(id string) bool { return id == tipID })
	r.Disliked = slices.DeleteFunc(r.Disliked, func(id string) bool { return id == tipID })
}

// UpdateReactions records which journey updates one viewer has liked.
// Updates have no dislike dimension.
type UpdateReactions struct {
	Liked []string `json:"liked"`
}

// HasLiked reports whether the viewer has liked the update.
func (r *UpdateReactions) HasLiked(updateID string) bool {
	return slices.Contains(r.Liked, updateID)
}

// SetLiked adds the update to the liked set if not already present.
func (r *UpdateReactions) SetLiked(updateID string) {
	if !r.HasLiked(updateID) {
		r.Liked = append(r.Liked, updateID)
	}
}

// Clear removes the update from the liked set.
func (r *UpdateReactions) Clear(updateID string) {
	r.Liked = slices.DeleteFunc(r.Liked, func(id string) bool { return id == updateID })
}
