package tutor

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/savvy-app/archie-server/internal/domain"
)

func rawList(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		out[i] = json.RawMessage(s)
	}
	return out
}

func TestReconcilePreservesOrder(t *testing.T) {
	t.Parallel()

	prior := rawList(
		`{"uri":"files/a","mimeType":"image/png"}`,
		`{"uri":"files/b","mimeType":"application/pdf"}`,
	)
	uploaded := []domain.AttachmentRef{
		{URI: "files/c", MIMEType: "image/jpeg"},
		{URI: "files/d", MIMEType: "image/png"},
	}

	got := Reconcile(prior, uploaded)
	want := []domain.AttachmentRef{
		{URI: "files/a", MIMEType: "image/png"},
		{URI: "files/b", MIMEType: "application/pdf"},
		{URI: "files/c", MIMEType: "image/jpeg"},
		{URI: "files/d", MIMEType: "image/png"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reconcile order mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestReconcileDropsMalformedPriorEntries(t *testing.T) {
	t.Parallel()

	prior := rawList(
		`{}`,
		`{"uri":"x"}`,
		`"not-an-object"`,
		`{"uri":"y","mimeType":"image/png"}`,
		`42`,
		`null`,
	)

	got := Reconcile(prior, nil)
	want := []domain.AttachmentRef{{URI: "y", MIMEType: "image/png"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected only the complete entry to survive:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestReconcileNoDeduplication(t *testing.T) {
	t.Parallel()

	prior := rawList(`{"uri":"files/a","mimeType":"image/png"}`)
	uploaded := []domain.AttachmentRef{{URI: "files/a", MIMEType: "image/png"}}

	got := Reconcile(prior, uploaded)
	if len(got) != 2 {
		t.Errorf("duplicates must be preserved, got %d entries", len(got))
	}
}

func TestReconcileEmptyInputsYieldEmptyList(t *testing.T) {
	t.Parallel()

	got := Reconcile(nil, nil)
	if got == nil {
		t.Fatal("result must be non-nil so it marshals as an array")
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}
