package model

import (
	"testing"
	"time"
)

func TestPackageRank(t *testing.T) {
	cases := map[PackageType]int{
		PackageElite:   1,
		PackageCreator: 2,
		PackagePrime:   3,
		PackageMaster:  4,
		PackagePremium: 0,
		PackageSupreme: 0,
		"":              0,
	}
	for tag, want := range cases {
		if got := tag.Rank(); got != want {
			t.Errorf("rank of %q: expected %d, got %d", tag, want, got)
		}
	}
}

func TestHighestPackage(t *testing.T) {
	got, ok := HighestPackage([]PackageType{PackageElite, PackageMaster, PackageCreator})
	if !ok || got != PackageMaster {
		t.Fatalf("expected master, got %q (ok=%v)", got, ok)
	}

	got, ok = HighestPackage([]PackageType{"unknown", PackageCreator, PackageElite, PackageCreator})
	if !ok || got != PackageCreator {
		t.Fatalf("expected creator, got %q (ok=%v)", got, ok)
	}

	if _, ok := HighestPackage([]PackageType{"unknown", PackagePremium}); ok {
		t.Fatal("expected no tier for unranked tags")
	}
	if _, ok := HighestPackage(nil); ok {
		t.Fatal("expected no tier for empty input")
	}
}

func TestPackageRemapLookupAndInverse(t *testing.T) {
	remap := PackageRemap{
		{From: PackagePremium, To: PackageElite, CourseLimit: 1},
		{From: PackageElite, To: PackageCreator, CourseLimit: 3},
	}

	rule, ok := remap.Lookup(PackageElite)
	if !ok || rule.To != PackageCreator || rule.CourseLimit != 3 {
		t.Fatalf("unexpected rule: %+v (ok=%v)", rule, ok)
	}
	if _, ok := remap.Lookup(PackagePrime); ok {
		t.Fatal("prime must be unmapped")
	}

	sources := remap.Sources()
	if len(sources) != 2 || sources[0] != PackagePremium || sources[1] != PackageElite {
		t.Fatalf("unexpected sources: %v", sources)
	}

	inverse := remap.Inverse()
	back, ok := inverse.Lookup(PackageCreator)
	if !ok || back.To != PackageElite || back.CourseLimit != 0 {
		t.Fatalf("unexpected inverse rule: %+v", back)
	}
}

func TestIndexSpecName(t *testing.T) {
	spec := Index(Asc("status"), Asc("method"), Desc("createdAt"))
	if got := spec.Name(); got != "status_1_method_1_createdAt_-1" {
		t.Fatalf("unexpected name %q", got)
	}
	if !spec.Compound() {
		t.Fatal("expected compound index")
	}
	if Index(Asc("userId")).Compound() {
		t.Fatal("single field index reported as compound")
	}
	if !spec.Equal(Index(Asc("status"), Asc("method"), Desc("createdAt"))) {
		t.Fatal("expected equal specs")
	}
	if spec.Equal(Index(Asc("method"), Asc("status"), Desc("createdAt"))) {
		t.Fatal("key order must matter")
	}
}

func TestUserLacksProfileEditFields(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		user User
		want bool
	}{
		{"both absent", User{}, true},
		{"flag only", User{HasEditedProfile: Some(true)}, false},
		{"date only", User{ProfileEditDate: Some(&now)}, false},
		{"null date and false flag", User{HasEditedProfile: Some(false), ProfileEditDate: Some[*time.Time](nil)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.LacksProfileEditFields(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWithdrawalStatusValid(t *testing.T) {
	for _, s := range []WithdrawalStatus{WithdrawalPending, WithdrawalApproved, WithdrawalRejected, WithdrawalCompleted, WithdrawalFailed, WithdrawalRefunded} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if WithdrawalStatus("cancelled").Valid() {
		t.Error("unexpected valid status")
	}
}
