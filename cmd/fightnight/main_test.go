package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/theme"
	"github.com/and161185/fightnight/internal/view"
)

func withTmpConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("FIGHTNIGHT_UPSTREAM_REQUESTSPERSECOND", "0")
	return filepath.Join(dir, "fightnight")
}

func withFakeUpstream(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			_, _ = w.Write([]byte(`{"products":[
				{"id":1,"title":"Essence Mascara","price":9.99},
				{"id":2,"title":"Eyeshadow Palette","price":19.99},
				{"id":3,"title":"Powder Canister","price":14.99}
			]}`))
		case "/auth/login":
			var body struct{ Username, Password string }
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Password != "emilyspass" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"id":1,"username":"emilys","firstName":"Emily","lastName":"Johnson","email":"emily@x.dummyjson.com","accessToken":"tok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv("FIGHTNIGHT_UPSTREAM_BASEURL", srv.URL)
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(""), &out, &errOut)
	return code, out.String(), errOut.String()
}

func Test_version_SkipsApp(t *testing.T) {
	base := withTmpConfig(t)
	code, out, _ := runCLI(t, "version")
	if code != 0 || !strings.HasPrefix(out, "fightnight ") {
		t.Fatalf("version: code=%d out=%q", code, out)
	}
	if _, err := os.Stat(filepath.Join(base, "state.db")); !os.IsNotExist(err) {
		t.Fatalf("version must not open storage, stat err=%v", err)
	}
}

func Test_login_whoami_logout(t *testing.T) {
	_ = withTmpConfig(t)
	withFakeUpstream(t)

	if code, _, _ := runCLI(t, "whoami"); code != 1 {
		t.Fatalf("whoami before login: code=%d", code)
	}

	code, out, errOut := runCLI(t, "login")
	if code != 0 || !strings.Contains(out, "Welcome, Emily Johnson!") {
		t.Fatalf("login: code=%d out=%q err=%q", code, out, errOut)
	}

	code, out, _ = runCLI(t, "--json", "whoami")
	if code != 0 {
		t.Fatalf("whoami: code=%d", code)
	}
	var u model.User
	if err := json.Unmarshal([]byte(out), &u); err != nil || u.ID != "1" || u.Username != "emilys" {
		t.Fatalf("whoami json: %q err=%v", out, err)
	}

	if code, _, _ := runCLI(t, "logout"); code != 0 {
		t.Fatalf("logout: code=%d", code)
	}
	if code, _, _ := runCLI(t, "whoami"); code != 1 {
		t.Fatalf("whoami after logout: code=%d", code)
	}
}

func Test_login_BadPassword(t *testing.T) {
	_ = withTmpConfig(t)
	withFakeUpstream(t)

	code, _, errOut := runCLI(t, "login", "-p", "nope")
	if code != 1 || !strings.Contains(errOut, view.LoginHint) {
		t.Fatalf("login bad: code=%d err=%q", code, errOut)
	}
	code, _, errOut = runCLI(t, "login", "-u", " ", "-p", "")
	if code != 2 || !strings.Contains(errOut, "Please enter username and password") {
		t.Fatalf("login blank: code=%d err=%q", code, errOut)
	}
}

func Test_register(t *testing.T) {
	_ = withTmpConfig(t)

	code, out, _ := runCLI(t, "register", "--name", "Jane", "--email", "jane@example.com", "--password", "x")
	if code != 0 || !strings.Contains(out, view.RegisterSuccess) {
		t.Fatalf("register: code=%d out=%q", code, out)
	}
	code, _, _ = runCLI(t, "register", "--name", "Jane", "--email", "not-an-email", "--password", "x")
	if code != 2 {
		t.Fatalf("register invalid email: code=%d", code)
	}
}

func Test_fights_ListShowSearch(t *testing.T) {
	_ = withTmpConfig(t)
	withFakeUpstream(t)

	code, out, _ := runCLI(t, "--json", "fights", "list")
	if code != 0 {
		t.Fatalf("fights list: code=%d", code)
	}
	var list []model.FightEvent
	if err := json.Unmarshal([]byte(out), &list); err != nil || len(list) != 3 {
		t.Fatalf("fights list json: n=%d err=%v", len(list), err)
	}

	code, out, _ = runCLI(t, "--json", "fights", "show", list[0].ID)
	if code != 0 || !strings.Contains(out, list[0].Title) {
		t.Fatalf("fights show: code=%d out=%q", code, out)
	}

	code, _, errOut := runCLI(t, "fights", "show", "404")
	if code != 1 || !strings.Contains(errOut, view.FightNotFound) {
		t.Fatalf("fights show missing: code=%d err=%q", code, errOut)
	}

	code, out, _ = runCLI(t, "fights", "search", "zzz-no-match")
	if code != 0 || !strings.Contains(out, view.NoFights) {
		t.Fatalf("fights search empty: code=%d out=%q", code, out)
	}
}

func Test_fights_UpstreamDownUsesPlaceholder(t *testing.T) {
	_ = withTmpConfig(t)
	t.Setenv("FIGHTNIGHT_UPSTREAM_BASEURL", "http://127.0.0.1:1")

	code, out, errOut := runCLI(t, "--json", "fights", "list")
	if code != 0 || !strings.Contains(errOut, view.PlaceholderNotice) {
		t.Fatalf("placeholder: code=%d err=%q", code, errOut)
	}
	var list []model.FightEvent
	if err := json.Unmarshal([]byte(out), &list); err != nil || len(list) == 0 {
		t.Fatalf("placeholder json: %q err=%v", out, err)
	}
}

func Test_past_And_Fighters(t *testing.T) {
	_ = withTmpConfig(t)
	withFakeUpstream(t)

	code, out, _ := runCLI(t, "--json", "past")
	if code != 0 {
		t.Fatalf("past: code=%d", code)
	}
	var past []model.FightEvent
	if err := json.Unmarshal([]byte(out), &past); err != nil || len(past) != 3 {
		t.Fatalf("past json: n=%d err=%v", len(past), err)
	}
	for _, e := range past {
		if e.Status != model.StatusCompleted || !strings.HasPrefix(e.ID, "past-") {
			t.Fatalf("past event not completed: %+v", e)
		}
	}

	code, out, _ = runCLI(t, "--json", "fighters", "search")
	if code != 0 {
		t.Fatalf("fighters: code=%d", code)
	}
	var fighters []model.Fighter
	if err := json.Unmarshal([]byte(out), &fighters); err != nil || len(fighters) == 0 {
		t.Fatalf("fighters json: %q err=%v", out, err)
	}

	code, out, _ = runCLI(t, "fighters", "show", strings.ToUpper(fighters[0].Name))
	if code != 0 || !strings.Contains(out, fighters[0].Name) {
		t.Fatalf("fighters show: code=%d out=%q", code, out)
	}
	if code, _, _ := runCLI(t, "fighters", "show", "Nobody", "Here"); code != 1 {
		t.Fatalf("fighters show missing: code=%d", code)
	}
}

func Test_favourites_PersistAcrossRuns(t *testing.T) {
	_ = withTmpConfig(t)
	withFakeUpstream(t)

	if code, out, _ := runCLI(t, "favourites", "add", "2"); code != 0 || !strings.HasPrefix(out, "Saved ") {
		t.Fatalf("fav add: code=%d out=%q", code, out)
	}
	if code, _, _ := runCLI(t, "favourites", "add", "99"); code != 1 {
		t.Fatalf("fav add missing: code=%d", code)
	}

	code, out, _ := runCLI(t, "--json", "favs", "list")
	var favs []model.FightEvent
	if err := json.Unmarshal([]byte(out), &favs); code != 0 || err != nil || len(favs) != 1 || favs[0].ID != "2" {
		t.Fatalf("fav list: code=%d out=%q err=%v", code, out, err)
	}

	if code, _, _ := runCLI(t, "fav", "rm", "2"); code != 0 {
		t.Fatalf("fav rm: code=%d", code)
	}
	code, out, _ = runCLI(t, "favourites", "list")
	if code != 0 || !strings.Contains(out, view.NoFavourites) {
		t.Fatalf("fav list after rm: code=%d out=%q", code, out)
	}
}

func Test_theme_Toggle(t *testing.T) {
	_ = withTmpConfig(t)

	code, out, _ := runCLI(t, "theme", "toggle")
	if code != 0 || out != "Theme: light\n" {
		t.Fatalf("toggle: code=%d out=%q", code, out)
	}
	code, out, _ = runCLI(t, "--json", "theme", "show")
	if code != 0 || !strings.Contains(out, `"isDark": false`) {
		t.Fatalf("show: code=%d out=%q", code, out)
	}
}

func Test_exitCode(t *testing.T) {
	if exitCode(nil) != 0 {
		t.Fatalf("nil error must map to 0")
	}
	if exitCode(errShown) != 1 {
		t.Fatalf("shown error must map to 1")
	}
}

func Test_login_OtherUserGetsNoDefaultPassword(t *testing.T) {
	_ = withTmpConfig(t)
	withFakeUpstream(t)

	code, _, errOut := runCLI(t, "login", "-u", "someoneelse")
	if code != 2 || !strings.Contains(errOut, "Please enter username and password") {
		t.Fatalf("login other user: code=%d err=%q", code, errOut)
	}
	code, out, _ := runCLI(t, "login", "-p", "emilyspass")
	if code != 0 || !strings.Contains(out, "Welcome") {
		t.Fatalf("login default user explicit password: code=%d out=%q", code, out)
	}
}

func Test_lookups_UpstreamDownIsNotNotFound(t *testing.T) {
	_ = withTmpConfig(t)
	t.Setenv("FIGHTNIGHT_UPSTREAM_BASEURL", "http://127.0.0.1:1")

	for _, args := range [][]string{
		{"fights", "show", "1"},
		{"fighters", "show", "Nobody"},
		{"favourites", "add", "1"},
		{"favourites", "toggle", "1"},
	} {
		code, _, errOut := runCLI(t, args...)
		if code != 1 || !strings.Contains(errOut, view.CatalogDown) ||
			strings.Contains(errOut, view.FightNotFound) || strings.Contains(errOut, view.FighterNotFound) {
			t.Fatalf("%v: code=%d err=%q", args, code, errOut)
		}
	}
}

func Test_favourites_RemoveUnsaved(t *testing.T) {
	_ = withTmpConfig(t)

	code, out, _ := runCLI(t, "favourites", "remove", "42")
	if code != 0 || !strings.Contains(out, view.NotFavourite) || strings.Contains(out, "Removed") {
		t.Fatalf("remove unsaved: code=%d out=%q", code, out)
	}
}

type failingToggler struct{ dark bool }

func (f *failingToggler) Toggle(context.Context) (theme.Theme, error) {
	f.dark = !f.dark
	return theme.For(f.dark), errors.New("disk full")
}

func Test_toggleTheme_WriteFailureStillFlips(t *testing.T) {
	var out, errOut bytes.Buffer
	toggleTheme(context.Background(), &out, &errOut, &failingToggler{dark: true}, zap.NewNop())
	if out.String() != "Theme: light\n" {
		t.Fatalf("out=%q", out.String())
	}
	if !strings.Contains(errOut.String(), "not saved") {
		t.Fatalf("err=%q", errOut.String())
	}
}

func Test_sealedStorage_WrongPassphraseRefused(t *testing.T) {
	_ = withTmpConfig(t)
	withFakeUpstream(t)
	t.Setenv("FIGHTNIGHT_STORAGE_PASSPHRASE", "right")

	if code, _, _ := runCLI(t, "favourites", "add", "2"); code != 0 {
		t.Fatalf("fav add: code=%d", code)
	}

	t.Setenv("FIGHTNIGHT_STORAGE_PASSPHRASE", "wrong")
	code, _, errOut := runCLI(t, "logout")
	if code != 1 || !strings.Contains(errOut, "passphrase") {
		t.Fatalf("wrong passphrase: code=%d err=%q", code, errOut)
	}

	t.Setenv("FIGHTNIGHT_STORAGE_PASSPHRASE", "right")
	code, out, _ := runCLI(t, "--json", "favourites", "list")
	var favs []model.FightEvent
	if err := json.Unmarshal([]byte(out), &favs); code != 0 || err != nil || len(favs) != 1 {
		t.Fatalf("favs after wrong passphrase: code=%d out=%q err=%v", code, out, err)
	}
}
