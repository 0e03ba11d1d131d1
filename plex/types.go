package plex

import (
	"encoding/xml"
	"strconv"
	"time"
)

// Credentials are the plex.tv account login and password
type Credentials struct {
	Login    string
	Password string
}

// signInRequest is the JSON body posted to the sign-in endpoint
type signInRequest struct {
	User userRequest `json:"user"`
}

type userRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Authentication is the sign-in response. plex.tv nests the token inside
// the user object; a top-level authToken is accepted as well.
type Authentication struct {
	AuthToken string `json:"authToken"`
	User      *User  `json:"user,omitempty"`
}

// Token returns the auth token for subsequent calls
func (a *Authentication) Token() string {
	if a.AuthToken != "" {
		return a.AuthToken
	}
	if a.User != nil {
		if a.User.AuthToken != "" {
			return a.User.AuthToken
		}
		return a.User.AuthenticationToken
	}
	return ""
}

// User represents a plex.tv account
type User struct {
	ID                  int64  `json:"id"`
	UUID                string `json:"uuid"`
	Email               string `json:"email"`
	Username            string `json:"username"`
	Title               string `json:"title"`
	Thumb               string `json:"thumb"`
	AuthToken           string `json:"authToken"`
	AuthenticationToken string `json:"authentication_token"`
	HasPassword         bool   `json:"hasPassword"`
}

// GetDisplayName returns the best available display name for the user
func (u *User) GetDisplayName() string {
	if u.Title != "" {
		return u.Title
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// Account is the response of users/account.json
type Account struct {
	User User `json:"user"`
}

// Container is the JSON envelope returned by Plex Media Server endpoints
type Container struct {
	MediaContainer MediaContainer `json:"MediaContainer"`
}

// IsEmpty reports whether the container holds no directories or metadata
func (c *Container) IsEmpty() bool {
	return len(c.MediaContainer.Directory) == 0 && len(c.MediaContainer.Metadata) == 0
}

// MediaContainer holds either library sections (Directory) or items (Metadata)
type MediaContainer struct {
	Size                int         `json:"size"`
	AllowSync           bool        `json:"allowSync"`
	Identifier          string      `json:"identifier"`
	LibrarySectionID    int         `json:"librarySectionID"`
	LibrarySectionTitle string      `json:"librarySectionTitle"`
	Title1              string      `json:"title1"`
	Title2              string      `json:"title2"`
	ViewGroup           string      `json:"viewGroup"`
	Directory           []Directory `json:"Directory"`
	Metadata            []Metadata  `json:"Metadata"`
}

// Directory is a library section
type Directory struct {
	Key        string    `json:"key"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Agent      string    `json:"agent"`
	Scanner    string    `json:"scanner"`
	Language   string    `json:"language"`
	UUID       string    `json:"uuid"`
	Art        string    `json:"art"`
	Thumb      string    `json:"thumb"`
	UpdatedAt  Timestamp `json:"updatedAt"`
	CreatedAt  Timestamp `json:"createdAt"`
	ScannedAt  Timestamp `json:"scannedAt"`
	Refreshing bool      `json:"refreshing"`
	Location   []struct {
		ID   int    `json:"id"`
		Path string `json:"path"`
	} `json:"Location"`
}

// Metadata is a single library item (movie, show, episode, ...)
type Metadata struct {
	RatingKey             string    `json:"ratingKey"`
	Key                   string    `json:"key"`
	GUID                  string    `json:"guid"`
	Type                  string    `json:"type"`
	Title                 string    `json:"title"`
	TitleSort             string    `json:"titleSort,omitempty"`
	Summary               string    `json:"summary"`
	Studio                string    `json:"studio,omitempty"`
	ContentRating         string    `json:"contentRating,omitempty"`
	Tagline               string    `json:"tagline,omitempty"`
	Thumb                 string    `json:"thumb,omitempty"`
	Art                   string    `json:"art,omitempty"`
	OriginallyAvailableAt string    `json:"originallyAvailableAt,omitempty"`
	Year                  int       `json:"year,omitempty"`
	Duration              int64     `json:"duration"`
	Rating                float64   `json:"rating,omitempty"`
	AudienceRating        float64   `json:"audienceRating,omitempty"`
	ViewCount             int       `json:"viewCount,omitempty"`
	LeafCount             int       `json:"leafCount,omitempty"`
	ViewedLeafCount       int       `json:"viewedLeafCount,omitempty"`
	AddedAt               Timestamp `json:"addedAt"`
	UpdatedAt             Timestamp `json:"updatedAt"`
	LastViewedAt          Timestamp `json:"lastViewedAt,omitempty"`
	Genre                 []Tag     `json:"Genre,omitempty"`
	Director              []Tag     `json:"Director,omitempty"`
	Role                  []Tag     `json:"Role,omitempty"`
}

// Tag is a named tag such as a genre or director
type Tag struct {
	Tag string `json:"tag"`
}

// Timestamp is a Unix timestamp in seconds as sent by Plex
type Timestamp int64

// Time converts the timestamp to a time.Time; zero stays zero
func (ts Timestamp) Time() time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(int64(ts), 0)
}

// UnmarshalJSON accepts both numbers and quoted numbers
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	if s == "" {
		*ts = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*ts = Timestamp(v)
	return nil
}

// Image is a raw image download
type Image struct {
	ContentType string
	Data        []byte
}

// FriendList is the XML response of pms/friends/all
type FriendList struct {
	XMLName      xml.Name `xml:"MediaContainer"`
	FriendlyName string   `xml:"friendlyName,attr"`
	Identifier   string   `xml:"identifier,attr"`
	Size         int      `xml:"size,attr"`
	Users        []Friend `xml:"User"`
}

// Friend is a user the account shares with
type Friend struct {
	ID           int64          `xml:"id,attr"`
	Title        string         `xml:"title,attr"`
	Username     string         `xml:"username,attr"`
	Email        string         `xml:"email,attr"`
	Thumb        string         `xml:"thumb,attr"`
	Home         bool           `xml:"home,attr"`
	AllowSync    bool           `xml:"allowSync,attr"`
	FilterMovies string         `xml:"filterMovies,attr"`
	Servers      []SharedServer `xml:"Server"`
}

// SharedServer is a server shared with a friend
type SharedServer struct {
	ID                int64  `xml:"id,attr"`
	ServerID          int64  `xml:"serverId,attr"`
	MachineIdentifier string `xml:"machineIdentifier,attr"`
	Name              string `xml:"name,attr"`
	NumLibraries      int    `xml:"numLibraries,attr"`
	AllLibraries      bool   `xml:"allLibraries,attr"`
	Owned             bool   `xml:"owned,attr"`
	Pending           bool   `xml:"pending,attr"`
}

// ServerList is the XML response of pms/servers.xml
type ServerList struct {
	XMLName xml.Name `xml:"MediaContainer"`
	Size    int      `xml:"size,attr"`
	Servers []Server `xml:"Server"`
}

// Server is a Plex Media Server registered to the account
type Server struct {
	Name              string `xml:"name,attr"`
	Address           string `xml:"address,attr"`
	Port              int    `xml:"port,attr"`
	Scheme            string `xml:"scheme,attr"`
	Host              string `xml:"host,attr"`
	LocalAddresses    string `xml:"localAddresses,attr"`
	MachineIdentifier string `xml:"machineIdentifier,attr"`
	Version           string `xml:"version,attr"`
	AccessToken       string `xml:"accessToken,attr"`
	Owned             bool   `xml:"owned,attr"`
	Synced            bool   `xml:"synced,attr"`
	CreatedAt         int64  `xml:"createdAt,attr"`
	UpdatedAt         int64  `xml:"updatedAt,attr"`
}

// URL returns the server's public base URL
func (s *Server) URL() string {
	scheme := s.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + s.Address + ":" + strconv.Itoa(s.Port)
}
