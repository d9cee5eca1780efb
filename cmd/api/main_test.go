package main

import (
	"testing"

	"github.com/jessebautista/wpnew-sub000/internal/config"
)

func TestRestTransportRequiresDatabase(t *testing.T) {
	restOnly := &config.Config{
		RestURL: "https://project.supabase.co",
		RestKey: "anon-key",
	}
	if restTransportEnabled(restOnly, false) {
		t.Error("rest transport enabled without a database; moderation would split from public reads")
	}
	if !restTransportEnabled(restOnly, true) {
		t.Error("rest transport disabled despite a configured database")
	}

	unconfigured := &config.Config{}
	if restTransportEnabled(unconfigured, true) {
		t.Error("rest transport enabled without supabase credentials")
	}
}
