package navigate

import (
	"reflect"
	"testing"
)

func TestURL(t *testing.T) {
	tests := []struct {
		base, route, want string
	}{
		{"http://127.0.0.1:5002", Level3Route, "http://127.0.0.1:5002/game/part2"},
		{"http://127.0.0.1:5002/", Level3Route, "http://127.0.0.1:5002/game/part2"},
		{"http://example.com/game/part1", Level3Route, "http://example.com/game/part2"},
		{"http://example.com", "game/part2", "http://example.com/game/part2"},
		{"", Level3Route, "/game/part2"},
	}
	for _, tt := range tests {
		if got := URL(tt.base, tt.route); got != tt.want {
			t.Errorf("URL(%q, %q) = %q, want %q", tt.base, tt.route, got, tt.want)
		}
	}
}

func TestRouter_Navigate(t *testing.T) {
	r := NewRouter("http://127.0.0.1:5002")
	var gotRoute, gotURL string
	r.OnNavigate(func(route, target string) { gotRoute, gotURL = route, target })

	if r.Last() != "" {
		t.Fatal("fresh router has a route")
	}
	r.Navigate(Level3Route)

	if r.Last() != Level3Route {
		t.Errorf("last = %q", r.Last())
	}
	if gotRoute != Level3Route || gotURL != "http://127.0.0.1:5002/game/part2" {
		t.Errorf("hook got (%q, %q)", gotRoute, gotURL)
	}
	if !reflect.DeepEqual(r.History(), []string{Level3Route}) {
		t.Errorf("history = %v", r.History())
	}
}
