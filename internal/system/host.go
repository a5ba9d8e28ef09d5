package system

import (
	"os"
	"os/user"
	"strconv"
)

// User describes the user on whose behalf edi runs.
type User struct {
	Name string
	UID  int
	GID  int
	Home string
}

// Host abstracts lookups of the invoking user and the machine edi runs on.
// Implementations never fail: missing facts fall back to environment
// values or zero values.
type Host interface {
	// CurrentUser returns the invoking user. Under sudo this is the user
	// that called sudo, not root.
	CurrentUser() User

	// Hostname returns the name of this machine.
	Hostname() string

	// Getenv returns the value of the named environment variable or
	// fallback when it is unset.
	Getenv(key, fallback string) string
}

// osHost implements Host using the real process environment.
type osHost struct{}

func (h *osHost) CurrentUser() User {
	var u *user.User
	var err error
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		u, err = user.Lookup(sudoUser)
	} else {
		u, err = user.Current()
	}
	if err != nil {
		return User{
			Name: os.Getenv("USER"),
			UID:  os.Getuid(),
			GID:  os.Getgid(),
			Home: os.Getenv("HOME"),
		}
	}

	uid, _ := strconv.Atoi(u.Uid)
	gid, _ := strconv.Atoi(u.Gid)
	return User{
		Name: u.Username,
		UID:  uid,
		GID:  gid,
		Home: u.HomeDir,
	}
}

func (h *osHost) Hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	return name
}

func (h *osHost) Getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
