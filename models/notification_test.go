package models

import (
	"strings"
	"testing"
)

func TestComposeAreaNotification(t *testing.T) {
	inv := &Invoice{ID: 2, NfeNumber: "0015024"}
	subject, body := ComposeAreaNotification(inv, "Fiscal")

	if subject != "Pendência na Nota 0015024" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, "Fiscal") {
		t.Errorf("body %q must reference the area name", body)
	}
}

func TestComposeAreaNotificationWithUnknownArea(t *testing.T) {
	inv := &Invoice{ID: 2, NfeNumber: "0015024"}
	_, body := ComposeAreaNotification(inv, UnknownAreaName)
	if !strings.Contains(body, UnknownAreaName) {
		t.Errorf("body %q must carry the placeholder for a deleted area", body)
	}
}
