package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrUserNotFound is reported by directory lookups for an identity the bot
// has never seen.
var ErrUserNotFound = errors.New("user not found")

// User represents a Telegram account the bot has seen at least once.
type User struct {
	ID        int64      `json:"id" db:"id"`
	FirstName string     `json:"first_name" db:"first_name"`
	LastName  string     `json:"last_name" db:"last_name"`
	Username  string     `json:"username" db:"username"`
	IsBlocked bool       `json:"is_blocked" db:"is_blocked"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// FullName returns the user's full name
func (u *User) FullName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// ProfileURL returns a link to the user's profile: t.me for users with a
// public username, the tg:// deep link otherwise.
func (u *User) ProfileURL() string {
	if u.Username != "" {
		return "https://t.me/" + u.Username
	}
	return "tg://user?id=" + strconv.FormatInt(u.ID, 10)
}

// BlockFilter narrows a user listing by block state. The string values are
// the wire encoding used in pagination callback payloads.
type BlockFilter string

const (
	FilterAll        BlockFilter = "All"
	FilterBlocked    BlockFilter = "True"
	FilterNotBlocked BlockFilter = "False"
)

// ParseBlockFilter converts a /users command argument into a filter.
// An empty argument means no filtering.
func ParseBlockFilter(arg string) (BlockFilter, error) {
	switch arg {
	case "":
		return FilterAll, nil
	case "blocked":
		return FilterBlocked, nil
	case "!blocked":
		return FilterNotBlocked, nil
	default:
		return "", fmt.Errorf("unknown filter %q: expected \"blocked\" or \"!blocked\"", arg)
	}
}

// Valid reports whether the filter holds one of the known wire values.
func (f BlockFilter) Valid() bool {
	switch f {
	case FilterAll, FilterBlocked, FilterNotBlocked:
		return true
	}
	return false
}

// ListPageSize is the fixed number of users on a listing page.
const ListPageSize = 5

// UserInfoList is one page of a filtered user listing. It is derived
// per-request and never cached.
type UserInfoList struct {
	Items      []*User
	Page       int
	TotalItems int
	Filter     BlockFilter
}

// TotalPages returns the page count under the active filter. An empty
// listing still has one (empty) page.
func (l *UserInfoList) TotalPages() int {
	pages := (l.TotalItems + ListPageSize - 1) / ListPageSize
	if pages < 1 {
		return 1
	}
	return pages
}
