package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/triply/triply-be/internal/models"
)

// Session is the locally persisted client state.
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	FullName  string `json:"full_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

var (
	// ErrNotLoggedIn is returned when a protected call is made without a
	// stored session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrSessionExpired is returned after an auth failure clears the local
	// session; the caller should log in again.
	ErrSessionExpired = errors.New("session expired, please login again")
)

const (
	maxRetries  = 3
	baseBackoff = 500 * time.Millisecond
)

// Client is the Triply API client. Transient transport and server errors are
// retried with exponential backoff; an auth failure clears the session
// immediately and is never retried.
type Client struct {
	session     *Session
	sessionPath string
	httpClient  *http.Client
}

// New creates a client persisting its session under ~/.triply.
func New() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewWithPath(filepath.Join(home, ".triply", "session.json"))
}

// NewWithPath creates a client with an explicit session file location.
func NewWithPath(sessionPath string) (*Client, error) {
	c := &Client{
		sessionPath: sessionPath,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	c.loadSession()
	return c, nil
}

func (c *Client) loadSession() {
	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		c.session = &Session{ServerURL: "http://localhost:8000"}
		return
	}
	c.session = &Session{}
	json.Unmarshal(data, c.session)
	if c.session.ServerURL == "" {
		c.session.ServerURL = "http://localhost:8000"
	}
}

func (c *Client) saveSession() error {
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath, data, 0600)
}

// SetServer sets the API base URL.
func (c *Client) SetServer(url string) error {
	c.session.ServerURL = url
	return c.saveSession()
}

// IsLoggedIn reports whether a session token is stored. This is a routing
// guard only; the server remains the source of truth.
func (c *Client) IsLoggedIn() bool {
	return c.session.Token != ""
}

// CurrentSession returns the stored session state.
func (c *Client) CurrentSession() Session {
	return *c.session
}

// Logout clears the stored session.
func (c *Client) Logout() error {
	c.session.Token = ""
	c.session.FullName = ""
	c.session.Email = ""
	return c.saveSession()
}

// apiEnvelope is the server's standard response wrapper.
type apiEnvelope struct {
	Error        bool                 `json:"error"`
	Message      string               `json:"message"`
	AccessToken  string               `json:"accessToken"`
	User         json.RawMessage      `json:"user"`
	Story        *models.TravelStory  `json:"story"`
	UpdatedStory *models.TravelStory  `json:"updatedStory"`
	Stories      []models.TravelStory `json:"stories"`
	Trip         *models.FutureTrip   `json:"trip"`
	Trips        []models.FutureTrip  `json:"trips"`
	ImageURL     string               `json:"imageUrl"`
	DeletedID    string               `json:"deletedId"`
}

// do sends a request, retrying transport errors and 5xx responses with
// exponential backoff. A 401/403 clears the session and fails immediately.
func (c *Client) do(method, path string, body interface{}, authed bool) (*apiEnvelope, error) {
	if authed && !c.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(baseBackoff << (attempt - 1))
		}

		env, retryable, err := c.doOnce(method, path, bodyBytes, authed)
		if err == nil {
			return env, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, lastErr)
}

func (c *Client) doOnce(method, path string, bodyBytes []byte, authed bool) (*apiEnvelope, bool, error) {
	var reader io.Reader
	if bodyBytes != nil {
		reader = bytes.NewReader(bodyBytes)
	}
	req, err := http.NewRequest(method, c.session.ServerURL+path, reader)
	if err != nil {
		return nil, false, err
	}
	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()
	return c.decode(resp)
}

func (c *Client) decode(resp *http.Response) (*apiEnvelope, bool, error) {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.Logout()
		return nil, false, ErrSessionExpired
	}
	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("server error: %s", resp.Status)
	}

	env := &apiEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return nil, false, err
	}
	if resp.StatusCode >= 400 || env.Error {
		return nil, false, fmt.Errorf("%s", env.Message)
	}
	return env, false, nil
}

// Register creates an account and stores the issued session.
func (c *Client) Register(fullName, email, password string) error {
	env, err := c.do(http.MethodPost, "/create-account", map[string]string{
		"fullName": fullName,
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return err
	}
	return c.adoptSession(env, email)
}

// Login authenticates and stores the issued session.
func (c *Client) Login(email, password string) error {
	env, err := c.do(http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return err
	}
	return c.adoptSession(env, email)
}

func (c *Client) adoptSession(env *apiEnvelope, email string) error {
	c.session.Token = env.AccessToken
	c.session.Email = email
	var profile struct {
		FullName string `json:"fullName"`
	}
	if env.User != nil {
		json.Unmarshal(env.User, &profile)
	}
	c.session.FullName = profile.FullName
	return c.saveSession()
}

// GetUser fetches the caller's profile.
func (c *Client) GetUser() (models.User, error) {
	env, err := c.do(http.MethodGet, "/get-user", nil, true)
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	if err := json.Unmarshal(env.User, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Stories lists the caller's travel stories.
func (c *Client) Stories() ([]models.TravelStory, error) {
	env, err := c.do(http.MethodGet, "/get-all-stories", nil, true)
	if err != nil {
		return nil, err
	}
	return env.Stories, nil
}

// AddStory creates a travel story.
func (c *Client) AddStory(story models.TravelStory) (models.TravelStory, error) {
	env, err := c.do(http.MethodPost, "/add-travel-story", story, true)
	if err != nil {
		return models.TravelStory{}, err
	}
	return *env.Story, nil
}

// DeleteStory deletes one of the caller's stories.
func (c *Client) DeleteStory(id string) error {
	_, err := c.do(http.MethodDelete, "/delete-travel-story/"+id, nil, true)
	return err
}

// SetFavourite flips the favourite flag on a story.
func (c *Client) SetFavourite(id string, favourite bool) (models.TravelStory, error) {
	env, err := c.do(http.MethodPut, "/update-favourite/"+id, map[string]bool{"isFavourite": favourite}, true)
	if err != nil {
		return models.TravelStory{}, err
	}
	return *env.UpdatedStory, nil
}

// Search runs the text search over the caller's stories.
func (c *Client) Search(query string) ([]models.TravelStory, error) {
	env, err := c.do(http.MethodGet, "/search/filter?query="+url.QueryEscape(query), nil, true)
	if err != nil {
		return nil, err
	}
	return env.Stories, nil
}

// FilterByDate filters stories by visited date, inclusive epoch-milli bounds.
func (c *Client) FilterByDate(start, end int64) ([]models.TravelStory, error) {
	path := fmt.Sprintf("/travel-stories/filter?startDate=%d&endDate=%d", start, end)
	env, err := c.do(http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	return env.Stories, nil
}

// Trips lists the caller's future trips.
func (c *Client) Trips() ([]models.FutureTrip, error) {
	env, err := c.do(http.MethodGet, "/future-trips", nil, true)
	if err != nil {
		return nil, err
	}
	return env.Trips, nil
}

// AddTrip creates a future trip.
func (c *Client) AddTrip(trip models.FutureTrip) (models.FutureTrip, error) {
	env, err := c.do(http.MethodPost, "/future-trips", trip, true)
	if err != nil {
		return models.FutureTrip{}, err
	}
	return *env.Trip, nil
}

// DeleteTrip deletes one of the caller's trips.
func (c *Client) DeleteTrip(id string) error {
	_, err := c.do(http.MethodDelete, "/future-trips/"+id, nil, true)
	return err
}

// UploadImage uploads a local image file and returns its public URL.
// Multipart uploads are not retried.
func (c *Client) UploadImage(localPath string) (string, error) {
	if !c.IsLoggedIn() {
		return "", ErrNotLoggedIn
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filepath.Base(localPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, c.session.ServerURL+"/image-upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.session.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	env, _, err := c.decode(resp)
	if err != nil {
		return "", err
	}
	return env.ImageURL, nil
}

// DeleteImage removes a stored image by its public URL.
func (c *Client) DeleteImage(imageURL string) error {
	_, err := c.do(http.MethodDelete, "/delete-image", map[string]string{"imageUrl": imageURL}, true)
	return err
}
