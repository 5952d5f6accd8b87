package api

import (
	"net/http"
	"testing"

	"github.com/craftvoice/craftvoice/internal/model"
)

func TestCreateProfile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/profiles", CreateProfileRequest{
		Name:      "Juniper Ridge Meadery",
		OwnerName: "Sam",
		Location:  "Bend, Oregon",
		ToneWords: "warm, wild, honest",
	})
	mustStatus(t, rec, http.StatusCreated)

	var profile model.BusinessProfile
	decodeData(t, rec, &profile)
	if profile.ID == 0 {
		t.Error("profile ID not assigned")
	}
	if profile.PostsPerWeek != 3 {
		t.Errorf("posts_per_week default = %d, want 3", profile.PostsPerWeek)
	}
}

func TestCreateProfile_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/profiles", CreateProfileRequest{Name: "No Location"})
	mustStatus(t, rec, http.StatusUnprocessableEntity)

	detail := decodeError(t, rec)
	if detail.Code != "validation_error" {
		t.Errorf("code = %q", detail.Code)
	}
	if _, ok := detail.Details["location"]; !ok {
		t.Errorf("missing location field error: %v", detail.Details)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/profiles/42", nil)
	mustStatus(t, rec, http.StatusNotFound)
	if detail := decodeError(t, rec); detail.Code != "not_found" {
		t.Errorf("code = %q", detail.Code)
	}
}

func TestUpdateProfile_PartialAndPasswordHidden(t *testing.T) {
	env := newTestEnv(t)
	created := createTestProfile(t, env.queries)

	url := "https://juniperridge.example.com"
	user := "sam"
	pass := "app-password"
	rec := env.do(t, http.MethodPut, "/api/v1/profiles/"+itoa(created.ID), UpdateProfileRequest{
		WordPressURL:      &url,
		WordPressUsername: &user,
		WordPressPassword: &pass,
	})
	mustStatus(t, rec, http.StatusOK)

	// The password never appears in a response body.
	if body := rec.Body.String(); contains(body, "app-password") {
		t.Errorf("password leaked in response: %s", body)
	}

	var updated model.BusinessProfile
	decodeData(t, rec, &updated)
	if updated.Name != created.Name {
		t.Errorf("untouched field changed: %q", updated.Name)
	}
	if updated.WordPressURL != url {
		t.Errorf("wordpress_url = %q", updated.WordPressURL)
	}

	// Cached reads see the update.
	rec = env.do(t, http.MethodGet, "/api/v1/profiles/"+itoa(created.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	var fetched model.BusinessProfile
	decodeData(t, rec, &fetched)
	if fetched.WordPressURL != url {
		t.Errorf("stale cache after update: %q", fetched.WordPressURL)
	}
}

func TestListProfiles(t *testing.T) {
	env := newTestEnv(t)
	createTestProfile(t, env.queries)

	rec := env.do(t, http.MethodGet, "/api/v1/profiles", nil)
	mustStatus(t, rec, http.StatusOK)

	var profiles []model.BusinessProfile
	decodeData(t, rec, &profiles)
	if len(profiles) != 1 {
		t.Errorf("profiles = %d", len(profiles))
	}
}
