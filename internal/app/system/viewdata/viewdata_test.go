package viewdata_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/accidentdash/internal/app/system/auth"
	"github.com/dalemusser/accidentdash/internal/app/system/viewdata"
)

func TestNewBaseVM_Anonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/register", nil)
	vm := viewdata.NewBaseVM(req, "Register", "/")

	if vm.IsLoggedIn {
		t.Error("expected IsLoggedIn=false without a user")
	}
	if vm.Title != "Register" {
		t.Errorf("Title: got %q, want %q", vm.Title, "Register")
	}
	if vm.SiteName != viewdata.DefaultSiteName {
		t.Errorf("SiteName: got %q", vm.SiteName)
	}
	if vm.BackURL == "" {
		t.Error("expected a BackURL")
	}
}

func TestNewBaseVM_SignedIn(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: 3, Name: "Ann", Email: "a@x.com"})

	vm := viewdata.NewBaseVM(req, "Dashboard", "/")
	if !vm.IsLoggedIn {
		t.Fatal("expected IsLoggedIn=true")
	}
	if vm.UserName != "Ann" || vm.UserEmail != "a@x.com" {
		t.Errorf("unexpected user fields: %+v", vm)
	}
}
