package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/servilink/marketplace-api/internal/core/domain"
)

func seedDirectory(repo *stubUserRepo) {
	repo.users["c1"] = &domain.User{ID: "c1", Name: "Claire", Email: "claire@example.com", Role: domain.RoleClient, PasswordHash: "hash"}
	repo.users["t1"] = &domain.User{ID: "t1", Name: "Marc Dupont", Email: "marc@example.com", Role: domain.RoleTechnician, Profession: domain.ProfessionList{"Electrical"}}
	repo.users["t2"] = &domain.User{ID: "t2", Name: "Sophie Martin", Email: "sophie@example.com", Role: domain.RoleTechnician}
}

func TestDirectoryService_ListClients(t *testing.T) {
	repo := newStubUserRepo()
	seedDirectory(repo)
	svc := NewDirectoryService(repo, zerolog.Nop())

	clients, err := svc.ListClients(context.Background())
	if err != nil {
		t.Fatalf("ListClients returned error: %v", err)
	}
	if len(clients) != 1 || clients[0].Name != "Claire" {
		t.Fatalf("unexpected clients: %+v", clients)
	}
	if clients[0].Profession == nil {
		t.Fatalf("profession must serialize as a list even for clients")
	}
}

func TestDirectoryService_ListTechnicians(t *testing.T) {
	repo := newStubUserRepo()
	seedDirectory(repo)
	svc := NewDirectoryService(repo, zerolog.Nop())

	techs, err := svc.ListTechnicians(context.Background())
	if err != nil {
		t.Fatalf("ListTechnicians returned error: %v", err)
	}
	if len(techs) != 2 {
		t.Fatalf("expected 2 technicians, got %d", len(techs))
	}
	for _, p := range techs {
		if p.Profession == nil {
			t.Fatalf("profession must never be nil in a listing: %+v", p)
		}
	}
}

func TestDirectoryService_Search_CaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	seedDirectory(repo)
	svc := NewDirectoryService(repo, zerolog.Nop())

	techs, err := svc.SearchTechnicians(context.Background(), "dupont")
	if err != nil {
		t.Fatalf("SearchTechnicians returned error: %v", err)
	}
	if len(techs) != 1 || techs[0].Name != "Marc Dupont" {
		t.Fatalf("unexpected result: %+v", techs)
	}
}

func TestDirectoryService_Search_NoMatchIsEmptyList(t *testing.T) {
	repo := newStubUserRepo()
	seedDirectory(repo)
	svc := NewDirectoryService(repo, zerolog.Nop())

	techs, err := svc.SearchTechnicians(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("SearchTechnicians returned error: %v", err)
	}
	if techs == nil || len(techs) != 0 {
		t.Fatalf("expected empty list, got %v", techs)
	}
}
