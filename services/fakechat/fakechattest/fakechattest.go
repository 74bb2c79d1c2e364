// Package fakechattest runs the fake messaging service on a loopback
// listener for tests.
package fakechattest

import (
	"net/http/httptest"
	"sync"
	"testing"

	"chatapi/services/fakechat"
	"chatapi/services/fakechat/conf"
	"chatapi/storage"
)

const Password = "secret"

// Seed has three users and one page administered by the first user.
// Alice is friends with Bob and Carol.
var Seed = storage.DirectorySeed{
	Users: []storage.UserRecord{
		{ID: "100001", Email: "alice@example.com", Password: Password, Name: "Alice Liddell", FirstName: "Alice", Vanity: "alice.liddell", Gender: "female_singular"},
		{ID: "100002", Email: "bob@example.com", Password: Password, Name: "Bob Stone", FirstName: "Bob", Vanity: "", Gender: "male_singular"},
		{ID: "100003", Email: "carol@example.com", Password: Password, Name: "Carol King", FirstName: "Carol", Vanity: "carol", Gender: "female_singular", IsBirthday: true},
	},
	Pages: []storage.PageRecord{
		{ID: "900001", Name: "Wonderland", Vanity: "wonderland", Admins: []string{"100001"}},
	},
	Friendships: [][]string{{"100001", "100002"}, {"100001", "100003"}},
}

// Server is a running fake service
type Server struct {
	URL     string
	Service *fakechat.Service
	http    *httptest.Server
	once    sync.Once
}

// Start serves seed until the test ends
func Start(t testing.TB, seed storage.DirectorySeed) *Server {
	t.Helper()
	config, err := conf.Default()
	if err != nil {
		t.Fatal(err)
	}
	config.Directory = seed
	svc, err := fakechat.New(config)
	if err != nil {
		t.Fatal(err)
	}
	hs := httptest.NewServer(svc)
	srv := &Server{URL: hs.URL, Service: svc, http: hs}
	t.Cleanup(srv.Close)
	return srv
}

func (s *Server) Close() {
	s.once.Do(func() {
		_ = s.Service.Close()
		s.http.Close()
	})
}
