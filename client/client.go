// Package client is a Go consumer of the forum HTTP API. It layers a user
// profile cache, a stale-time query cache, and paginated feeds on top of the
// raw endpoint calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"forum404/internal/model"
)

// ErrNotAuthenticated is returned before issuing any request that needs a
// session when no token is set.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError carries the server's status code and error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Pagination mirrors the server's list envelope metadata.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// SetToken installs or clears the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.currentToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) requireToken() error {
	if c.currentToken() == "" {
		return ErrNotAuthenticated
	}
	return nil
}

// TokenPair is the login/refresh response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c *Client) Signup(ctx context.Context, firstName, lastName, email, password string) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"password":  password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates and installs the access token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &pair)
	if err != nil {
		return nil, err
	}
	c.SetToken(pair.AccessToken)
	return &pair, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// GetUser fetches a single profile by id.
func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	q := url.Values{"id": {id}}
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/users", q, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsers fetches a batch of profiles in one request.
func (c *Client) GetUsers(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	q := url.Values{"ids": {strings.Join(ids, ",")}}
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/api/users", q, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile patches the given fields of the actor's own profile.
func (c *Client) UpdateProfile(ctx context.Context, id string, fields map[string]any) (*model.User, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	body := map[string]any{"id": id}
	for k, v := range fields {
		body[k] = v
	}
	var user model.User
	if err := c.do(ctx, http.MethodPatch, "/api/users", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/category", nil, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

type TopicPage struct {
	Items      []model.Topic `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// TopicFilter narrows topic listings.
type TopicFilter struct {
	CategoryID string
	AuthorID   string
}

func (c *Client) ListTopics(ctx context.Context, f TopicFilter, page, limit int) (*TopicPage, error) {
	q := url.Values{}
	if f.CategoryID != "" {
		q.Set("categoryId", f.CategoryID)
	}
	if f.AuthorID != "" {
		q.Set("authorId", f.AuthorID)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out TopicPage
	if err := c.do(ctx, http.MethodGet, "/api/topic", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTopic(ctx context.Context, categoryID, title, content string) (*model.Topic, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var topic model.Topic
	err := c.do(ctx, http.MethodPost, "/api/topic", nil, map[string]string{
		"category_id": categoryID,
		"title":       title,
		"content":     content,
	}, &topic)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (c *Client) DeleteTopic(ctx context.Context, topicID string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/api/topic", nil, map[string]string{"topicId": topicID}, nil)
}

func (c *Client) ListPosts(ctx context.Context, topicID, authorID string) ([]model.Post, error) {
	q := url.Values{}
	if topicID != "" {
		q.Set("topicId", topicID)
	}
	if authorID != "" {
		q.Set("authorId", authorID)
	}
	var posts []model.Post
	if err := c.do(ctx, http.MethodGet, "/api/post", q, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, topicID, content string) (*model.Post, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var post model.Post
	err := c.do(ctx, http.MethodPost, "/api/post", nil, map[string]string{
		"topic_id": topicID,
		"content":  content,
	}, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/api/post", nil, map[string]string{"postId": postID}, nil)
}

// FollowerCount returns how many users follow userID.
func (c *Client) FollowerCount(ctx context.Context, userID string) (int64, error) {
	if err := c.requireToken(); err != nil {
		return 0, err
	}
	q := url.Values{"followers": {"true"}, "userId": {userID}}
	var out struct {
		Count int64 `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/following", q, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// ListFollowing returns the profiles userID follows. An empty userID means
// the authenticated actor.
func (c *Client) ListFollowing(ctx context.Context, userID string) ([]model.User, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	q := url.Values{}
	if userID != "" {
		q.Set("userId", userID)
	}
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/api/following", q, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) SavedTopics(ctx context.Context, userID string) ([]model.Topic, error) {
	q := url.Values{"userId": {userID}}
	var topics []model.Topic
	if err := c.do(ctx, http.MethodGet, "/api/saved-topics", q, nil, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// SearchPage holds one page of search results for a single type.
type SearchPage struct {
	Topics     []model.Topic
	Users      []model.User
	Categories []model.Category
	Pagination Pagination
}

func (c *Client) Search(ctx context.Context, query, typ string, page, limit int) (*SearchPage, error) {
	q := url.Values{"q": {query}, "type": {typ}}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var raw struct {
		Results    json.RawMessage `json:"results"`
		Pagination Pagination      `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/search", q, nil, &raw); err != nil {
		return nil, err
	}

	out := &SearchPage{Pagination: raw.Pagination}
	switch typ {
	case "topics":
		err := json.Unmarshal(raw.Results, &out.Topics)
		return out, err
	case "users":
		err := json.Unmarshal(raw.Results, &out.Users)
		return out, err
	case "categories":
		err := json.Unmarshal(raw.Results, &out.Categories)
		return out, err
	}
	return out, nil
}

func (c *Client) Subscriptions(ctx context.Context) ([]model.Subscription, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var subs []model.Subscription
	if err := c.do(ctx, http.MethodGet, "/api/subscriptions", nil, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
