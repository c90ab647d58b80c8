package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"
)

var (
	teamMembersPattern = regexp.MustCompile(`(?s)SELECT s\.stu_net_id AS net_id.*FROM member_of m`)
	criteriaPattern    = regexp.MustCompile(`(?s)SELECT criteria_name AS name.*FROM criteria`)
)

func TestLoadTeamMembersInvalidTeamNumberIssuesNoQuery(t *testing.T) {
	for _, teamNum := range []string{"abc", "", "-2", "0"} {
		db, state, cleanup := newScriptedGormDB(t, nil)

		svc := NewRosterService(db, NewSessionStore(time.Minute))

		members, err := svc.LoadTeamMembers("axa111111", teamNum, "CS4485.001")
		if !errors.Is(err, ErrInvalidTeamNumber) {
			t.Fatalf("teamNum %q: expected ErrInvalidTeamNumber, got %v", teamNum, err)
		}
		if members != nil {
			t.Fatalf("teamNum %q: expected no members, got %+v", teamNum, members)
		}

		if err := state.verifyComplete(); err != nil {
			t.Fatalf("teamNum %q: %v", teamNum, err)
		}
		cleanup()
	}
}

func TestLoadTeamMembersCachesRosterInOrder(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: teamMembersPattern,
			args:    []driver.Value{int64(7), "CS4485.001"},
			columns: []string{"net_id", "name"},
			rows: [][]driver.Value{
				{"axa111111", "Alice Adams"},
				{"bxb222222", "Bob Brown"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	sessions := NewSessionStore(time.Minute)
	sessions.Put(ReviewSession{NetID: "axa111111"})

	svc := NewRosterService(db, sessions)

	members, err := svc.LoadTeamMembers("axa111111", "7", "CS4485.001")
	if err != nil {
		t.Fatalf("LoadTeamMembers returned error: %v", err)
	}

	if len(members) != 2 || members[0].NetID != "axa111111" || members[1].NetID != "bxb222222" {
		t.Fatalf("unexpected roster: %+v", members)
	}

	session, _ := sessions.Get("axa111111")
	if len(session.TeamMembers) != 2 || session.TeamMembers[1].Name != "Bob Brown" {
		t.Fatalf("roster not cached: %+v", session.TeamMembers)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadCriteriaCachesInOrder(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: criteriaPattern,
			args:    []driver.Value{"CS4485.001", "Midterm"},
			columns: []string{"name", "description"},
			rows: [][]driver.Value{
				{"Communication", "Communicates clearly"},
				{"Effort", "Pulls their weight"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	sessions := NewSessionStore(time.Minute)
	sessions.Put(ReviewSession{NetID: "axa111111"})

	svc := NewRosterService(db, sessions)

	criteria, err := svc.LoadCriteria("axa111111", "Midterm", "CS4485.001")
	if err != nil {
		t.Fatalf("LoadCriteria returned error: %v", err)
	}

	if len(criteria) != 2 || criteria[0].Name != "Communication" || criteria[1].Name != "Effort" {
		t.Fatalf("unexpected criteria: %+v", criteria)
	}

	session, _ := sessions.Get("axa111111")
	if len(session.Criteria) != 2 || session.Criteria[0].Description != "Communicates clearly" {
		t.Fatalf("criteria not cached: %+v", session.Criteria)
	}
	if session.ReviewType != "Midterm" {
		t.Fatalf("expected cached snapshot stamped with its kind, got %q", session.ReviewType)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadTeamMembersUpstreamFailure(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: teamMembersPattern,
			args:    []driver.Value{int64(7), "CS4485.001"},
			err:     errors.New("connection refused"),
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRosterService(db, NewSessionStore(time.Minute))

	_, err := svc.LoadTeamMembers("axa111111", "7", "CS4485.001")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
