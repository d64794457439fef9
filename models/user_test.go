package models

import "testing"

func TestGeneralUserCanResolveAnyArea(t *testing.T) {
	u := User{ID: 1, Role: UserRoleGeneral}
	for _, areaId := range []int{1, 2, 99} {
		if !u.CanResolve(areaId) {
			t.Errorf("GENERAL user rejected for area %d", areaId)
		}
	}
}

func TestSpecialistCanResolveOnlyOwnAreas(t *testing.T) {
	u := User{ID: 2, Role: UserRoleAreaSpecialist, AreaIds: []int{4}}
	if !u.CanResolve(4) {
		t.Error("specialist rejected for own area 4")
	}
	if u.CanResolve(2) {
		t.Error("specialist accepted for foreign area 2")
	}
}

func TestSpecialistWithNoAreasResolvesNothing(t *testing.T) {
	u := User{ID: 3, Role: UserRoleAreaSpecialist}
	if u.CanResolve(1) {
		t.Error("specialist with empty scope must resolve nothing")
	}
}

func TestReportAccessIsPerReport(t *testing.T) {
	u := User{ID: 2, AllowedReports: []string{ReportProactivity}}
	if !u.CanViewReport(ReportProactivity) {
		t.Error("expected access to granted report")
	}
	if u.CanViewReport(ReportMotives) {
		t.Error("expected no access to ungranted report")
	}
}

func TestPageAccessIsPerPage(t *testing.T) {
	u := User{ID: 2, AllowedPages: []string{PageDashboard, PageReports}}
	if !u.CanViewPage(PageDashboard) || !u.CanViewPage(PageReports) {
		t.Error("expected access to granted pages")
	}
	if u.CanViewPage(PageUsers) {
		t.Error("expected no access to ungranted page")
	}
}

func TestUserRoleValidation(t *testing.T) {
	if !UserRoleGeneral.Valid() || !UserRoleAreaSpecialist.Valid() {
		t.Error("known roles must be valid")
	}
	if UserRole("ADMIN").Valid() {
		t.Error("unknown role must be invalid")
	}
}

func TestPrepareGiveStripsPassword(t *testing.T) {
	u := User{ID: 1, Password: "$2a$10$hash"}
	u.PrepareGive()
	if u.Password != "" {
		t.Error("password must never leave the model layer")
	}
}
