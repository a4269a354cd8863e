package client

import (
	"context"
	"net/http"
)

// ToggleLike flips the actor's like on a topic. Requires a session.
func (c *Client) ToggleLike(ctx context.Context, topicID, userID string) (liked bool, likesCount int64, err error) {
	if err := c.requireToken(); err != nil {
		return false, 0, err
	}
	var out struct {
		Liked      bool  `json:"liked"`
		LikesCount int64 `json:"likesCount"`
	}
	err = c.do(ctx, http.MethodPatch, "/api/topic", nil, map[string]string{
		"action":  "toggle_like",
		"topicId": topicID,
		"userId":  userID,
	}, &out)
	if err != nil {
		return false, 0, err
	}
	return out.Liked, out.LikesCount, nil
}

// ToggleSave flips the actor's save on a topic. Requires a session.
func (c *Client) ToggleSave(ctx context.Context, topicID, userID string) (saved bool, err error) {
	if err := c.requireToken(); err != nil {
		return false, err
	}
	var out struct {
		Saved bool `json:"saved"`
	}
	err = c.do(ctx, http.MethodPatch, "/api/saved-topics", nil, map[string]string{
		"action":  "toggle_save",
		"topicId": topicID,
		"userId":  userID,
	}, &out)
	if err != nil {
		return false, err
	}
	return out.Saved, nil
}

// Follow subscribes the actor to another user's activity.
func (c *Client) Follow(ctx context.Context, followedUserID string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/following", nil,
		map[string]string{"followedUserId": followedUserID}, nil)
}

func (c *Client) Unfollow(ctx context.Context, followedUserID string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/api/following", nil,
		map[string]string{"followedUserId": followedUserID}, nil)
}

// Engagement bundles a Client with the caches so toggles can keep cached
// queries coherent after a write.
type Engagement struct {
	Client  *Client
	Queries *QueryCache
	Users   *UserCache
}

const (
	opTopics      = "topics"
	opSavedTopics = "saved-topics"
	opFollowing   = "following"
	opLikeState   = "like-state"
)

// ToggleLike performs the toggle and drops the cached topic and like-state
// queries so the next read sees the new counter.
func (e *Engagement) ToggleLike(ctx context.Context, topicID, userID string) (bool, int64, error) {
	liked, likes, err := e.Client.ToggleLike(ctx, topicID, userID)
	if err != nil {
		return false, 0, err
	}
	if e.Queries != nil {
		e.Queries.InvalidatePrefix(opTopics)
		e.Queries.Set(QueryKey(opLikeState, topicID, userID), liked)
	}
	return liked, likes, nil
}

// ToggleSave performs the toggle and drops the cached saved-topics list.
func (e *Engagement) ToggleSave(ctx context.Context, topicID, userID string) (bool, error) {
	saved, err := e.Client.ToggleSave(ctx, topicID, userID)
	if err != nil {
		return false, err
	}
	if e.Queries != nil {
		e.Queries.InvalidatePrefix(opSavedTopics)
	}
	return saved, nil
}

// Follow writes the edge and drops the cached following list.
func (e *Engagement) Follow(ctx context.Context, followedUserID string) error {
	if err := e.Client.Follow(ctx, followedUserID); err != nil {
		return err
	}
	if e.Queries != nil {
		e.Queries.InvalidatePrefix(opFollowing)
	}
	return nil
}

// Unfollow removes the edge and drops the cached following list.
func (e *Engagement) Unfollow(ctx context.Context, followedUserID string) error {
	if err := e.Client.Unfollow(ctx, followedUserID); err != nil {
		return err
	}
	if e.Queries != nil {
		e.Queries.InvalidatePrefix(opFollowing)
	}
	return nil
}

// UpdateProfile patches the profile and invalidates the cached copy.
func (e *Engagement) UpdateProfile(ctx context.Context, id string, fields map[string]any) error {
	_, err := e.Client.UpdateProfile(ctx, id, fields)
	if err != nil {
		return err
	}
	if e.Users != nil {
		e.Users.Invalidate(id)
	}
	return nil
}
