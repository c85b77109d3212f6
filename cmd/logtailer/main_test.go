package main

import (
	"strings"
	"testing"
	"time"
)

func TestOverridesFromFlags_Unset(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	o, err := overridesFromFlags(cmd.Flags(), nil)
	if err != nil {
		t.Fatalf("overridesFromFlags returned error: %v", err)
	}
	if o.Path != nil || o.PollInterval != nil || o.Backlog != nil || o.LogLevel != nil {
		t.Fatalf("overrides = %#v, want all nil", o)
	}
}

func TestOverridesFromFlags_Set(t *testing.T) {
	cmd := newRootCmd()
	err := cmd.ParseFlags([]string{
		"--poll", "250",
		"--max-hours", "2",
		"-n", "5",
		"--notify",
		"--metrics-addr", ":9100",
		"--log-level", "debug",
	})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	o, err := overridesFromFlags(cmd.Flags(), []string{"/var/log/app.log"})
	if err != nil {
		t.Fatalf("overridesFromFlags returned error: %v", err)
	}
	if o.Path == nil || *o.Path != "/var/log/app.log" {
		t.Errorf("Path = %v", o.Path)
	}
	if o.PollInterval == nil || *o.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v", o.PollInterval)
	}
	if o.MaxHours == nil || *o.MaxHours != 2 {
		t.Errorf("MaxHours = %v", o.MaxHours)
	}
	if o.Backlog == nil || *o.Backlog != 5 {
		t.Errorf("Backlog = %v", o.Backlog)
	}
	if o.Notify == nil || !*o.Notify {
		t.Errorf("Notify = %v", o.Notify)
	}
	if o.MetricsAddr == nil || *o.MetricsAddr != ":9100" {
		t.Errorf("MetricsAddr = %v", o.MetricsAddr)
	}
	if o.LogLevel == nil || *o.LogLevel != "debug" {
		t.Errorf("LogLevel = %v", o.LogLevel)
	}
	if o.LogFile != nil || o.FromEnd != nil {
		t.Errorf("unexpected overrides LogFile=%v FromEnd=%v", o.LogFile, o.FromEnd)
	}
}

func TestOverridesFromFlags_RejectsNonPositivePoll(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--poll", "0"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if _, err := overridesFromFlags(cmd.Flags(), nil); err == nil || !strings.Contains(err.Error(), "--poll") {
		t.Fatalf("error = %v, want --poll error", err)
	}
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"a.log", "b.log"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("Execute returned nil error for two paths")
	}
}
