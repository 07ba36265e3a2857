// Package lcu talks to the locally running League Client (LCU) to pull the
// current lobby roster, so loadouts can be generated for whoever is
// actually in the lobby without retyping names.
package lcu

import (
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrLockfileNotFound = errors.New("lockfile not found")
	ErrLeagueNotRunning = errors.New("league client is not running")
)

// Credentials holds the LCU connection details parsed from lockfile
type Credentials struct {
	ProcessName string
	PID         string
	Port        string
	Password    string
	Protocol    string
}

// Client is a REST connection to the League Client
type Client struct {
	credentials *Credentials
	httpClient  *http.Client
	baseURL     string
	authHeader  string
}

// NewClient creates a new LCU client
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, // LCU uses a self-signed cert
				},
			},
			Timeout: 2 * time.Second, // short timeout for quick disconnect detection
		},
	}
}

// FindLockfile searches the common League install locations for the lockfile
func FindLockfile() (string, error) {
	possiblePaths := []string{
		"C:/Riot Games/League of Legends/lockfile",
		"D:/Riot Games/League of Legends/lockfile",
		"C:/Program Files/Riot Games/League of Legends/lockfile",
		"C:/Program Files (x86)/Riot Games/League of Legends/lockfile",
	}
	for _, drive := range []string{"E:", "F:", "G:"} {
		possiblePaths = append(possiblePaths, filepath.Join(drive, "Riot Games/League of Legends/lockfile"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", ErrLockfileNotFound
}

// ParseLockfile reads and parses the lockfile content.
// Format: LeagueClient:pid:port:password:protocol
func ParseLockfile(path string) (*Credentials, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}

	parts := strings.Split(string(content), ":")
	if len(parts) != 5 {
		return nil, fmt.Errorf("invalid lockfile format: expected 5 parts, got %d", len(parts))
	}

	return &Credentials{
		ProcessName: parts[0],
		PID:         parts[1],
		Port:        parts[2],
		Password:    parts[3],
		Protocol:    parts[4],
	}, nil
}

// Connect locates the lockfile and establishes the REST connection
func (c *Client) Connect() error {
	lockfilePath, err := FindLockfile()
	if err != nil {
		return err
	}

	creds, err := ParseLockfile(lockfilePath)
	if err != nil {
		return err
	}

	c.credentials = creds
	c.baseURL = fmt.Sprintf("https://127.0.0.1:%s", creds.Port)
	c.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte("riot:"+creds.Password))

	if err := c.testConnection(); err != nil {
		return fmt.Errorf("failed to connect to LCU: %w", err)
	}

	return nil
}

func (c *Client) testConnection() error {
	resp, err := c.Get("/lol-summoner/v1/current-summoner")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

// IsConnected reports whether the client can still reach the LCU
func (c *Client) IsConnected() bool {
	if c.credentials == nil {
		return false
	}

	if err := c.testConnection(); err != nil {
		c.credentials = nil
		return false
	}

	return true
}

// GetCredentials returns the current LCU credentials
func (c *Client) GetCredentials() *Credentials {
	return c.credentials
}

// Disconnect clears the connection state
func (c *Client) Disconnect() {
	c.credentials = nil
}

// Get performs a GET request against the LCU API
func (c *Client) Get(endpoint string) (*http.Response, error) {
	if c.credentials == nil {
		return nil, ErrLeagueNotRunning
	}

	req, err := http.NewRequest("GET", c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.authHeader)
	return c.httpClient.Do(req)
}

// LobbyMember is one player in the current lobby
type LobbyMember struct {
	SummonerName string `json:"summonerName"`
	GameName     string `json:"gameName"`
	IsLeader     bool   `json:"isLeader"`
}

// DisplayName returns the member's visible name, preferring the Riot ID
// game name over the legacy summoner name.
func (m LobbyMember) DisplayName() string {
	if m.GameName != "" {
		return m.GameName
	}
	return m.SummonerName
}

// LobbyMembers returns the display names of everyone in the current lobby,
// in lobby order. A 404 means no lobby is open, reported as an empty list.
func (c *Client) LobbyMembers() ([]string, error) {
	resp, err := c.Get("/lol-lobby/v2/lobby/members")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var members []LobbyMember
	if err := json.NewDecoder(resp.Body).Decode(&members); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		if name := strings.TrimSpace(m.DisplayName()); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Players implements the generator's PlayerSource over the live lobby.
// Errors degrade to an empty roster; the caller falls back to manual names.
func (c *Client) Players() []string {
	names, err := c.LobbyMembers()
	if err != nil {
		return nil
	}
	return names
}
