package photos_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"doorops/internal/photos"
	"doorops/internal/services"
)

func TestLayoutClassify(t *testing.T) {
	cases := []struct {
		path string
		want photos.PathKind
	}{
		{"/uploads/a.jpg", photos.KindLocal},
		{"https://cdn.example.com/b.jpg", photos.KindExternal},
		{"HTTP://old/b.jpg", photos.KindExternal},
		{"/images/placeholder.jpg", photos.KindPlaceholder},
		{"", photos.KindEmpty},
		{"  ", photos.KindOther},
		{" /uploads/a.jpg", photos.KindOther},
		{"/static/c.jpg", photos.KindOther},
	}
	for _, tc := range cases {
		if got := testLayout.Classify(tc.path); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}

	overlapping := photos.Layout{LocalPrefix: "/uploads/", Placeholder: "/uploads/placeholder.jpg"}
	if got := overlapping.Classify("/uploads/placeholder.jpg"); got != photos.KindPlaceholder {
		t.Fatalf("placeholder under local prefix must not be local, got %s", got)
	}
}

func TestParsePolicy(t *testing.T) {
	for input, want := range map[string]photos.Policy{
		"":             photos.PolicyVerify,
		"verify":       photos.PolicyVerify,
		"Prefer-Local": photos.PolicyPreferLocal,
		"local":        photos.PolicyPreferLocal,
	} {
		got, err := photos.ParsePolicy(input)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParsePolicy(%q) = %s, want %s", input, got, want)
		}
	}
	if _, err := photos.ParsePolicy("newest"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestComputeTargetsVerifyPrefersExistingLocal(t *testing.T) {
	records := []photos.Record{
		cover("1", "DomeoDoors_Base_1|White", "https://old/b.jpg"),
		cover("2", "DomeoDoors_Base_1|White", "/uploads/missing.jpg"),
		cover("3", "DomeoDoors_Base_1|White", "/uploads/a.jpg"),
		cover("4", "DomeoDoors_Base_1|White", "/images/placeholder.jpg"),
	}
	presence := &presenceMap{existing: map[string]bool{"/uploads/a.jpg": true}}

	targets, err := photos.ComputeTargets(records, photos.PolicyVerify, testLayout, presence)
	if err != nil {
		t.Fatalf("ComputeTargets: %v", err)
	}
	want := photos.Targets{
		"DomeoDoors_Base_1|White": {Path: "/uploads/a.jpg", Resolution: photos.ResolvedLocal, SourceID: "3"},
	}
	if diff := cmp.Diff(want, targets); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeTargetsVerifyFallsBackToPlaceholder(t *testing.T) {
	records := []photos.Record{
		cover("1", "Base_2|Oak", "https://old/x.jpg"),
		cover("2", "Base_2|Oak", "/uploads/gone.jpg"),
		cover("3", "Base_3|Ash", "https://old/y.jpg"),
	}
	presence := &presenceMap{existing: map[string]bool{}}

	targets, err := photos.ComputeTargets(records, photos.PolicyVerify, testLayout, presence)
	if err != nil {
		t.Fatalf("ComputeTargets: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected a target for each distinct value, got %d", len(targets))
	}
	for key, target := range targets {
		if target.Path != testLayout.Placeholder || target.Resolution != photos.ResolvedPlaceholder {
			t.Fatalf("%s: expected placeholder target, got %+v", key, target)
		}
	}
	if presence.calls != 1 {
		t.Fatalf("expected only the local path to be probed, got %d probes", presence.calls)
	}
}

func TestComputeTargetsVerifyTieGoesToFirstRecord(t *testing.T) {
	records := []photos.Record{
		cover("1", "Base_1|White", "/uploads/first.jpg"),
		cover("2", "Base_1|White", "/uploads/second.jpg"),
	}
	presence := &presenceMap{existing: map[string]bool{"/uploads/first.jpg": true, "/uploads/second.jpg": true}}

	targets, err := photos.ComputeTargets(records, photos.PolicyVerify, testLayout, presence)
	if err != nil {
		t.Fatalf("ComputeTargets: %v", err)
	}
	if got := targets["Base_1|White"].Path; got != "/uploads/first.jpg" {
		t.Fatalf("expected first existing path to win, got %q", got)
	}
}

func TestComputeTargetsVerifyCachesProbes(t *testing.T) {
	records := []photos.Record{
		cover("1", "A|White", "/uploads/shared.jpg"),
		cover("2", "B|White", "/uploads/shared.jpg"),
		cover("3", "B|White", "/uploads/shared.jpg"),
	}
	presence := &presenceMap{existing: map[string]bool{}}
	if _, err := photos.ComputeTargets(records, photos.PolicyVerify, testLayout, presence); err != nil {
		t.Fatalf("ComputeTargets: %v", err)
	}
	if presence.calls != 1 {
		t.Fatalf("expected one probe for a repeated path, got %d", presence.calls)
	}
}

func TestComputeTargetsVerifyProbeErrorIsFatal(t *testing.T) {
	records := []photos.Record{
		cover("1", "Base_1|White", "/uploads/locked.jpg"),
		cover("2", "Base_1|White", "https://old/b.jpg"),
	}
	presence := &presenceMap{failOn: "/uploads/locked.jpg"}

	_, err := photos.ComputeTargets(records, photos.PolicyVerify, testLayout, presence)
	if err == nil {
		t.Fatal("expected probe error to abort")
	}
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected filesystem marker, got %v", err)
	}
}

func TestComputeTargetsVerifyRequiresPresence(t *testing.T) {
	if _, err := photos.ComputeTargets(nil, photos.PolicyVerify, testLayout, nil); err == nil {
		t.Fatal("expected error without presence checker")
	}
}

func TestPreferLocalPlanIsConservative(t *testing.T) {
	records := []photos.Record{
		cover("1", "K|White", "https://old/k.jpg"),
		cover("2", "K|White", "/uploads/k.jpg"),
		cover("3", "K|White", "/images/placeholder.jpg"),
		cover("4", "K|White", "/uploads/other-k.jpg"),
		cover("5", "Only|External", "https://old/only.jpg"),
	}

	targets, err := photos.ComputeTargets(records, photos.PolicyPreferLocal, testLayout, nil)
	if err != nil {
		t.Fatalf("ComputeTargets: %v", err)
	}
	if targets["Only|External"].Resolution != photos.Unresolved {
		t.Fatalf("expected unresolved group without local paths, got %+v", targets["Only|External"])
	}

	changes := photos.Plan(records, targets, photos.PolicyPreferLocal, testLayout)
	want := []photos.Change{{RecordID: "1", PropertyValue: "K|White", From: "https://old/k.jpg", To: "/uploads/k.jpg"}}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestVerifyPlanConvergesEveryShape(t *testing.T) {
	records := []photos.Record{
		cover("1", "K|White", "https://old/k.jpg"),
		cover("2", "K|White", "/uploads/k.jpg"),
		cover("3", "K|White", "/images/placeholder.jpg"),
		cover("4", "K|White", "/uploads/stale.jpg"),
	}
	targets := photos.Targets{"K|White": {Path: "/uploads/k.jpg", Resolution: photos.ResolvedLocal, SourceID: "2"}}

	changes := photos.Plan(records, targets, photos.PolicyVerify, testLayout)
	var ids []string
	for _, change := range changes {
		ids = append(ids, change.RecordID)
	}
	if diff := cmp.Diff([]string{"1", "3", "4"}, ids); diff != "" {
		t.Fatalf("changed ids mismatch (-want +got):\n%s", diff)
	}
}

func TestVerifyPlanRewritesPaddedLocalPath(t *testing.T) {
	records := []photos.Record{
		cover("p01", "A|White", " /uploads/a.jpg"),
		cover("p02", "A|White", "/uploads/a.jpg"),
	}
	presence := &presenceMap{existing: map[string]bool{" /uploads/a.jpg": true, "/uploads/a.jpg": true}}

	targets, err := photos.ComputeTargets(records, photos.PolicyVerify, testLayout, presence)
	if err != nil {
		t.Fatalf("ComputeTargets: %v", err)
	}
	if got := targets["A|White"].Path; got != "/uploads/a.jpg" {
		t.Fatalf("target = %q, want /uploads/a.jpg", got)
	}
	changes := photos.Plan(records, targets, photos.PolicyVerify, testLayout)
	if len(changes) != 1 || changes[0].RecordID != "p01" {
		t.Fatalf("expected only the padded row to change, got %+v", changes)
	}
}

func TestGroupRecordsKeepsFirstSeenOrder(t *testing.T) {
	groups := photos.GroupRecords([]photos.Record{
		cover("1", "B", "x"),
		cover("2", "A", "y"),
		cover("3", "B", "z"),
	})
	if len(groups) != 2 || groups[0].Key != "B" || groups[1].Key != "A" {
		t.Fatalf("unexpected grouping: %+v", groups)
	}
	if len(groups[0].Records) != 2 {
		t.Fatalf("expected two records in group B, got %d", len(groups[0].Records))
	}
}
