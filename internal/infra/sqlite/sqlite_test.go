package sqlite_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pawden-app/pawden/internal/domain"
	"github.com/pawden-app/pawden/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testPet(id string) domain.Pet {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return domain.Pet{
		ID:      id,
		OwnerID: "owner-1",
		Name:    "Mochi",
		Species: "cat",
		Vitals: domain.Vitals{
			Fullness:    50,
			Happiness:   50,
			Cleanliness: 50,
			Energy:      50,
		},
		Stage:        domain.StageBaby,
		CreatedAt:    now,
		LastAgeCheck: now,
		ShareableID:  "share-" + id,
		Version:      1,
	}
}

func TestPet_InsertGetRoundTrip(t *testing.T) {
	db := testDB(t)
	pet := testPet("p1")
	pet.Items = []domain.Item{{Name: "kibble", Quantity: 2, Kind: "food"}}
	pet.Coins = 30

	if err := db.InsertPet(pet); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := db.GetPet("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Mochi" || got.Vitals.Fullness != 50 || got.Coins != 30 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("items mismatch: %+v", got.Items)
	}
	if got.Version != 1 {
		t.Errorf("version = %d, want 1", got.Version)
	}
	if !got.CreatedAt.Equal(pet.CreatedAt) {
		t.Errorf("created at = %v, want %v", got.CreatedAt, pet.CreatedAt)
	}
}

func TestPet_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetPet("missing")
	if !errors.Is(err, domain.ErrPetNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPet_GetByShareID(t *testing.T) {
	db := testDB(t)
	if err := db.InsertPet(testPet("p1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := db.GetPetByShareID("share-p1")
	if err != nil {
		t.Fatalf("get by share: %v", err)
	}
	if got.ID != "p1" {
		t.Errorf("resolved %s, want p1", got.ID)
	}
}

func TestPet_CompareAndSet(t *testing.T) {
	db := testDB(t)
	if err := db.InsertPet(testPet("p1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	first, _ := db.GetPet("p1")
	second, _ := db.GetPet("p1")

	first.XP = 5
	if err := db.CompareAndSetPet(*first); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	// The second writer still holds version 1 and must lose.
	second.XP = 10
	err := db.CompareAndSetPet(*second)
	if !errors.Is(err, domain.ErrWriteConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// A fresh load commits fine.
	fresh, _ := db.GetPet("p1")
	if fresh.XP != 5 || fresh.Version != 2 {
		t.Errorf("fresh snapshot: xp=%d version=%d", fresh.XP, fresh.Version)
	}
	fresh.XP = 10
	if err := db.CompareAndSetPet(*fresh); err != nil {
		t.Errorf("retry commit: %v", err)
	}
}

func TestPet_CompareAndSetDeleted(t *testing.T) {
	db := testDB(t)
	if err := db.InsertPet(testPet("p1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	pet, _ := db.GetPet("p1")
	if err := db.DeletePet("p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err := db.CompareAndSetPet(*pet)
	if !errors.Is(err, domain.ErrPetNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestPet_List(t *testing.T) {
	db := testDB(t)
	a := testPet("p1")
	b := testPet("p2")
	b.CreatedAt = a.CreatedAt.Add(time.Hour)
	other := testPet("p3")
	other.OwnerID = "owner-2"

	for _, p := range []domain.Pet{a, b, other} {
		if err := db.InsertPet(p); err != nil {
			t.Fatalf("insert %s: %v", p.ID, err)
		}
	}

	pets, err := db.ListPets("owner-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pets) != 2 || pets[0].ID != "p1" || pets[1].ID != "p2" {
		t.Errorf("list mismatch: %+v", pets)
	}
}

func TestInteractions_StatsAndMostRecent(t *testing.T) {
	db := testDB(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	records := []domain.InteractionRecord{
		{PetID: "p1", ActorID: "owner-1", ActionType: domain.ActionFeed, Timestamp: base},
		{PetID: "p1", ActorID: "visitor-a", ActionType: domain.ActionPet, Timestamp: base.Add(time.Minute)},
		{PetID: "p1", ActorID: "visitor-a", ActionType: domain.ActionTreat, Timestamp: base.Add(2 * time.Minute)},
		{PetID: "p1", ActorID: "visitor-b", ActionType: domain.ActionPet, Timestamp: base.Add(3 * time.Minute)},
		{PetID: "p2", ActorID: "visitor-c", ActionType: domain.ActionPet, Timestamp: base},
	}
	for _, rec := range records {
		if err := db.AppendInteraction(rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := db.InteractionStats("p1", "owner-1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 4 || stats.UniqueActors != 2 {
		t.Errorf("stats = %+v, want total 4 unique 2", stats)
	}

	last, err := db.MostRecentInteraction("p1", "visitor-a")
	if err != nil {
		t.Fatalf("most recent: %v", err)
	}
	if !last.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("most recent = %v", last)
	}

	never, err := db.MostRecentInteraction("p1", "visitor-z")
	if err != nil {
		t.Fatalf("most recent absent: %v", err)
	}
	if !never.IsZero() {
		t.Errorf("expected zero time for unseen actor, got %v", never)
	}
}

func TestInteractions_List(t *testing.T) {
	db := testDB(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := domain.InteractionRecord{
			PetID: "p1", ActorID: "owner-1",
			ActionType: domain.ActionFeed,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.AppendInteraction(rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recs, err := db.ListInteractions("p1", 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 || !recs[0].Timestamp.After(recs[2].Timestamp) {
		t.Errorf("expected 3 newest-first records: %+v", recs)
	}
}

func TestEvents_PendingLifecycle(t *testing.T) {
	db := testDB(t)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	id, err := db.InsertEvent(domain.Event{
		OwnerID: "owner-1", PetID: "p1",
		Type: domain.EventEvolution, Message: "Mochi evolved into a Teen!",
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}

	pending, err := db.ListPendingEvents("owner-1", 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("pending = %+v", pending)
	}

	if err := db.MarkEventShown(id); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	pending, _ = db.ListPendingEvents("owner-1", 10)
	if len(pending) != 0 {
		t.Errorf("expected empty feed after ack: %+v", pending)
	}

	n, err := db.EventCountSince("owner-1", domain.EventEvolution, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
