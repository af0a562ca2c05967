package constants

import "testing"

func TestUserStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to UserStatus
		want     bool
	}{
		{UserPending, UserActive, true},
		{UserPending, UserDenied, true},
		{UserPending, UserBanned, false},
		{UserActive, UserBanned, true},
		{UserBanned, UserActive, true},
		{UserDenied, UserActive, false},
		{UserActive, UserPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestHelpRequestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to HelpRequestStatus
		want     bool
	}{
		{HelpPending, HelpApproved, true},
		{HelpPending, HelpRejected, true},
		{HelpPending, HelpCancelled, true},
		{HelpPending, HelpCompleted, false},
		{HelpApproved, HelpOngoing, true},
		{HelpApproved, HelpCompleted, false},
		{HelpOngoing, HelpCompleted, true},
		{HelpOngoing, HelpCancelled, true},
		{HelpRejected, HelpApproved, false},
		{HelpCompleted, HelpCancelled, false},
		{HelpCancelled, HelpPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCampaignStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to CampaignStatus
		want     bool
	}{
		{CampaignDraft, CampaignPublished, true},
		{CampaignDraft, CampaignCancelled, true},
		{CampaignDraft, CampaignOngoing, false},
		{CampaignPublished, CampaignOngoing, true},
		{CampaignPublished, CampaignCompleted, false},
		{CampaignOngoing, CampaignCompleted, true},
		{CampaignOngoing, CampaignCancelled, true},
		{CampaignCompleted, CampaignPublished, false},
		{CampaignCancelled, CampaignDraft, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestStatusStringForms(t *testing.T) {
	if got := RegistrationAttended.String(); got != "ATTENDED" {
		t.Errorf("Expected ATTENDED, got %q", got)
	}
	if got := UserBanned.String(); got != "BANNED" {
		t.Errorf("Expected BANNED, got %q", got)
	}
	if got := HelpOngoing.String(); got != "ONGOING" {
		t.Errorf("Expected ONGOING, got %q", got)
	}
	if got := CampaignDraft.String(); got != "DRAFT" {
		t.Errorf("Expected DRAFT, got %q", got)
	}
}
