package storage

import (
	"sort"
	"strings"
	"sync"

	"chatapi/iface"
	"chatapi/wire"

	"github.com/pkg/errors"
)

const (
	TypeUser = "user"
	TypePage = "page"
)

// UserRecord seeds an account of the service
type UserRecord struct {
	ID         string `mapstructure:"id" json:"id"`
	Email      string `mapstructure:"email" json:"email"`
	Password   string `mapstructure:"password" json:"password"`
	Name       string `mapstructure:"name" json:"name"`
	FirstName  string `mapstructure:"firstName" json:"firstName"`
	Vanity     string `mapstructure:"vanity" json:"vanity"`
	Gender     string `mapstructure:"gender" json:"gender"`
	IsBirthday bool   `mapstructure:"isBirthday" json:"isBirthday"`
}

// PageRecord seeds a page and the users allowed to act as it
type PageRecord struct {
	ID     string   `mapstructure:"id" json:"id"`
	Name   string   `mapstructure:"name" json:"name"`
	Vanity string   `mapstructure:"vanity" json:"vanity"`
	Admins []string `mapstructure:"admins" json:"admins"`
}

// DirectorySeed is the account data loaded at start
type DirectorySeed struct {
	Users       []UserRecord `mapstructure:"users" json:"users"`
	Pages       []PageRecord `mapstructure:"pages" json:"pages"`
	Friendships [][]string   `mapstructure:"friendships" json:"friendships"`
}

// Directory answers who is who; read only after construction
type Directory struct {
	sync.RWMutex
	profileBase string
	users       map[string]UserRecord
	emails      map[string]string
	pages       map[string]PageRecord
	friends     map[string]map[string]struct{}
}

func NewDirectory(seed DirectorySeed, profileBase string) (*Directory, error) {
	if !strings.HasSuffix(profileBase, "/") {
		profileBase += "/"
	}
	d := &Directory{
		profileBase: profileBase,
		users:       make(map[string]UserRecord, len(seed.Users)),
		emails:      make(map[string]string, len(seed.Users)),
		pages:       make(map[string]PageRecord, len(seed.Pages)),
		friends:     make(map[string]map[string]struct{}),
	}
	for _, u := range seed.Users {
		if u.ID == "" || u.Email == "" {
			return nil, errors.Errorf("user %q needs an id and an email", u.Name)
		}
		if _, ok := d.users[u.ID]; ok {
			return nil, errors.Errorf("duplicate user id %s", u.ID)
		}
		d.users[u.ID] = u
		d.emails[strings.ToLower(u.Email)] = u.ID
	}
	for _, p := range seed.Pages {
		if p.ID == "" {
			return nil, errors.Errorf("page %q needs an id", p.Name)
		}
		d.pages[p.ID] = p
	}
	for _, pair := range seed.Friendships {
		if len(pair) != 2 {
			return nil, errors.Errorf("friendship %v is not a pair", pair)
		}
		for _, id := range pair {
			if _, ok := d.users[id]; !ok {
				return nil, errors.Errorf("friendship with unknown user %s", id)
			}
		}
		d.link(pair[0], pair[1])
		d.link(pair[1], pair[0])
	}
	return d, nil
}

func (d *Directory) link(a, b string) {
	set, ok := d.friends[a]
	if !ok {
		set = make(map[string]struct{})
		d.friends[a] = set
	}
	set[b] = struct{}{}
}

// Authenticate returns the user owning the credentials
func (d *Directory) Authenticate(email, password string) (UserRecord, error) {
	d.RLock()
	defer d.RUnlock()
	id, ok := d.emails[strings.ToLower(email)]
	if !ok {
		return UserRecord{}, iface.ErrUnauthorized
	}
	u := d.users[id]
	if u.Password != password {
		return UserRecord{}, iface.ErrUnauthorized
	}
	return u, nil
}

// ActAs resolves the actor a user logs in as
func (d *Directory) ActAs(userID, pageID string) (string, error) {
	if pageID == "" {
		return userID, nil
	}
	d.RLock()
	defer d.RUnlock()
	page, ok := d.pages[pageID]
	if !ok {
		return "", errors.Wrapf(iface.ErrForbidden, "page %s", pageID)
	}
	for _, admin := range page.Admins {
		if admin == userID {
			return page.ID, nil
		}
	}
	return "", errors.Wrapf(iface.ErrForbidden, "user %s on page %s", userID, pageID)
}

// Exists reports whether id is a user or a page
func (d *Directory) Exists(id string) bool {
	d.RLock()
	defer d.RUnlock()
	if _, ok := d.users[id]; ok {
		return true
	}
	_, ok := d.pages[id]
	return ok
}

func (d *Directory) IsFriend(a, b string) bool {
	d.RLock()
	defer d.RUnlock()
	_, ok := d.friends[a][b]
	return ok
}

// Profile renders id as seen by viewer
func (d *Directory) Profile(viewer, id string) (wire.UserInfo, bool) {
	d.RLock()
	defer d.RUnlock()
	if u, ok := d.users[id]; ok {
		_, friend := d.friends[viewer][id]
		vanity := u.Vanity
		return wire.UserInfo{
			Name:       u.Name,
			FirstName:  u.FirstName,
			Vanity:     &vanity,
			ProfileURL: d.profileURL(u.ID, u.Vanity),
			Gender:     u.Gender,
			Type:       TypeUser,
			IsFriend:   friend,
			IsBirthday: u.IsBirthday,
		}, true
	}
	if p, ok := d.pages[id]; ok {
		vanity := p.Vanity
		return wire.UserInfo{
			Name:       p.Name,
			FirstName:  p.Name,
			Vanity:     &vanity,
			ProfileURL: d.profileURL(p.ID, p.Vanity),
			Gender:     "UNKNOWN",
			Type:       TypePage,
		}, true
	}
	return wire.UserInfo{}, false
}

// Friends lists the friends of userID ordered by id
func (d *Directory) Friends(userID string) []wire.Friend {
	d.RLock()
	defer d.RUnlock()
	list := make([]wire.Friend, 0, len(d.friends[userID]))
	for id := range d.friends[userID] {
		u := d.users[id]
		list = append(list, wire.Friend{
			UserID:     u.ID,
			FullName:   u.Name,
			FirstName:  u.FirstName,
			Vanity:     u.Vanity,
			ProfileURL: d.profileURL(u.ID, u.Vanity),
			Gender:     u.Gender,
			Type:       TypeUser,
			IsFriend:   true,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UserID < list[j].UserID
	})
	return list
}

func (d *Directory) profileURL(id, vanity string) string {
	if vanity != "" {
		return d.profileBase + vanity
	}
	return d.profileBase + "profile.php?id=" + id
}
