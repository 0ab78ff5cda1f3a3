package keeper_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pawden-app/pawden/internal/app/keeper"
	"github.com/pawden-app/pawden/internal/domain"
	"github.com/pawden-app/pawden/internal/infra/sqlite"
)

// recorder captures emitted events for assertions.
type recorder struct {
	events []domain.Event
}

func (r *recorder) Emit(ownerID string, ev domain.Event) {
	ev.OwnerID = ownerID
	r.events = append(r.events, ev)
}

func testService(t *testing.T) (*keeper.Service, *sqlite.DB, *recorder) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	rec := &recorder{}
	return keeper.NewService(db, rec), db, rec
}

func createPet(t *testing.T, svc *keeper.Service, now time.Time) *domain.Pet {
	t.Helper()
	pet, err := svc.Create(keeper.CreateParams{
		OwnerID: "owner-1",
		Name:    "Mochi",
		Species: "cat",
	}, now)
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}
	return pet
}

func TestCreate_Defaults(t *testing.T) {
	svc, _, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	pet := createPet(t, svc, now)
	v := pet.Vitals
	if v.Fullness != 50 || v.Happiness != 50 || v.Cleanliness != 50 || v.Energy != 50 {
		t.Errorf("vitals = %+v, want all 50", v)
	}
	if pet.Stage != domain.StageBaby || pet.XP != 0 || pet.CurrentStreak != 0 {
		t.Errorf("fresh pet: stage=%v xp=%d streak=%d", pet.Stage, pet.XP, pet.CurrentStreak)
	}
	if pet.SharingEnabled || pet.ShareableID == "" {
		t.Errorf("sharing should start disabled with a token minted: %+v", pet)
	}
	if pet.Version != 1 {
		t.Errorf("version = %d, want 1", pet.Version)
	}
}

func TestPerformOwner_FeedPersists(t *testing.T) {
	svc, db, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)

	result, err := svc.PerformOwner(pet.ID, domain.ActionFeed, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if result.Pet.Vitals.Fullness != 70 || result.Pet.XP != 5 {
		t.Errorf("feed result: fullness=%d xp=%d", result.Pet.Vitals.Fullness, result.Pet.XP)
	}
	if result.Pet.CurrentStreak != 1 {
		t.Errorf("first action should start the streak, got %d", result.Pet.CurrentStreak)
	}

	// The committed row matches what the caller saw.
	stored, err := db.GetPet(pet.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Vitals.Fullness != 70 || stored.XP != 5 || stored.Version != 2 {
		t.Errorf("stored: fullness=%d xp=%d version=%d", stored.Vitals.Fullness, stored.XP, stored.Version)
	}

	history, err := svc.History(pet.ID, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ActionType != domain.ActionFeed {
		t.Errorf("history = %+v", history)
	}
}

func TestPerformOwner_SecondActionOnCooldown(t *testing.T) {
	svc, _, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)

	if _, err := svc.PerformOwner(pet.ID, domain.ActionFeed, now); err != nil {
		t.Fatalf("feed: %v", err)
	}

	_, err := svc.PerformOwner(pet.ID, domain.ActionPlay, now.Add(60*time.Second))
	cd, ok := domain.IsCooldown(err)
	if !ok {
		t.Fatalf("expected cooldown error, got %v", err)
	}
	if cd.Remaining != 540 {
		t.Errorf("remaining = %d, want 540", cd.Remaining)
	}
}

func TestPerformOwner_UnknownPet(t *testing.T) {
	svc, _, _ := testService(t)
	_, err := svc.PerformOwner("missing", domain.ActionFeed, time.Now())
	if !errors.Is(err, domain.ErrPetNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPerformOwner_EvolutionEmitsEvent(t *testing.T) {
	svc, db, rec := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)

	seeded, err := db.GetPet(pet.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	seeded.XP = 195
	if err := db.CompareAndSetPet(*seeded); err != nil {
		t.Fatalf("seed xp: %v", err)
	}

	result, err := svc.PerformOwner(pet.ID, domain.ActionFeed, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if !result.Evolved || result.Pet.Stage != domain.StageTeen {
		t.Errorf("expected evolution to teen: evolved=%v stage=%v", result.Evolved, result.Pet.Stage)
	}

	found := false
	for _, ev := range rec.events {
		if ev.Type == domain.EventEvolution && ev.OwnerID == "owner-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("no evolution event emitted: %+v", rec.events)
	}
}

func TestPerformShared_RequiresSharing(t *testing.T) {
	svc, _, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)

	_, err := svc.PerformShared(pet.ShareableID, domain.ActionPet, "visitor-a", now)
	if !errors.Is(err, domain.ErrSharingDisabled) {
		t.Fatalf("expected sharing disabled, got %v", err)
	}

	if _, err := svc.SetSharing(pet.ID, true); err != nil {
		t.Fatalf("enable sharing: %v", err)
	}
	result, err := svc.PerformShared(pet.ShareableID, domain.ActionPet, "visitor-a", now)
	if err != nil {
		t.Fatalf("visitor pet: %v", err)
	}
	if result.Pet.Vitals.Happiness != 60 || result.Pet.XP != 3 {
		t.Errorf("visitor pet result: happiness=%d xp=%d", result.Pet.Vitals.Happiness, result.Pet.XP)
	}
	if result.Pet.CurrentStreak != 0 {
		t.Errorf("visitor action must not touch the owner streak, got %d", result.Pet.CurrentStreak)
	}
}

func TestPerformShared_PerVisitorCooldown(t *testing.T) {
	svc, _, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)
	if _, err := svc.SetSharing(pet.ID, true); err != nil {
		t.Fatalf("enable sharing: %v", err)
	}

	if _, err := svc.PerformShared(pet.ShareableID, domain.ActionPet, "visitor-a", now); err != nil {
		t.Fatalf("first visit: %v", err)
	}

	// Same visitor again: blocked by their own clock.
	_, err := svc.PerformShared(pet.ShareableID, domain.ActionTreat, "visitor-a", now.Add(time.Minute))
	if _, ok := domain.IsCooldown(err); !ok {
		t.Fatalf("expected cooldown for repeat visitor, got %v", err)
	}

	// A different visitor is unaffected.
	if _, err := svc.PerformShared(pet.ShareableID, domain.ActionPet, "visitor-b", now.Add(time.Minute)); err != nil {
		t.Errorf("second visitor should be admitted: %v", err)
	}

	// The owner channel anchors on the pet's last action, which the
	// visitors just refreshed.
	_, err = svc.PerformOwner(pet.ID, domain.ActionFeed, now.Add(2*time.Minute))
	if _, ok := domain.IsCooldown(err); !ok {
		t.Errorf("expected owner blocked by the shared clock, got %v", err)
	}
}

func TestPerformShared_InvalidVisitorAction(t *testing.T) {
	svc, _, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)
	if _, err := svc.SetSharing(pet.ID, true); err != nil {
		t.Fatalf("enable sharing: %v", err)
	}

	_, err := svc.PerformShared(pet.ShareableID, domain.ActionFeed, "visitor-a", now)
	if !errors.Is(err, domain.ErrInvalidAction) {
		t.Errorf("feed is owner-only, got %v", err)
	}
}

func TestStatus_Readings(t *testing.T) {
	svc, _, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)

	if _, err := svc.PerformOwner(pet.ID, domain.ActionPlay, now); err != nil {
		t.Fatalf("play: %v", err)
	}

	status, err := svc.Status(pet.ID, now.Add(100*time.Second))
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Cooldown.OnCooldown || status.Cooldown.RemainingSeconds != 500 {
		t.Errorf("cooldown = %+v", status.Cooldown)
	}
	if status.Progress.XPToNext != 190 {
		t.Errorf("xp to next = %d, want 190", status.Progress.XPToNext)
	}
	if len(status.Actions) == 0 {
		t.Errorf("owner actions missing")
	}
}

func TestSharedStatus_VisitorView(t *testing.T) {
	svc, db, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)

	_, err := svc.SharedStatus(pet.ShareableID, "visitor-a", now)
	if !errors.Is(err, domain.ErrSharingDisabled) {
		t.Fatalf("expected sharing disabled, got %v", err)
	}

	if _, err := svc.SetSharing(pet.ID, true); err != nil {
		t.Fatalf("enable sharing: %v", err)
	}

	// Equip an accessory while still a baby: owned and worn, but hidden
	// from the public view until adulthood.
	seeded, _ := db.GetPet(pet.ID)
	seeded.Coins = 40
	if err := db.CompareAndSetPet(*seeded); err != nil {
		t.Fatalf("seed coins: %v", err)
	}
	if _, err := svc.Purchase(pet.ID, "red bandana"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if _, err := svc.Equip(pet.ID, "red bandana"); err != nil {
		t.Fatalf("equip: %v", err)
	}

	view, err := svc.SharedStatus(pet.ShareableID, "visitor-a", now)
	if err != nil {
		t.Fatalf("shared status: %v", err)
	}
	if view.Name != "Mochi" || view.Stage != "baby" {
		t.Errorf("view = %+v", view)
	}
	if len(view.Accessories) != 0 {
		t.Errorf("accessories visible before adult stage: %v", view.Accessories)
	}
	if view.Cooldown.OnCooldown {
		t.Errorf("fresh visitor should be ready: %+v", view.Cooldown)
	}

	for _, a := range view.Actions {
		if a == domain.ActionFeed {
			t.Errorf("owner-only action leaked into visitor list")
		}
	}
}

func TestShop_PurchaseAndEquip(t *testing.T) {
	svc, db, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)

	_, err := svc.Purchase(pet.ID, "kibble")
	if !errors.Is(err, domain.ErrInsufficientCoins) {
		t.Fatalf("expected insufficient coins, got %v", err)
	}

	seeded, _ := db.GetPet(pet.ID)
	seeded.Coins = 30
	if err := db.CompareAndSetPet(*seeded); err != nil {
		t.Fatalf("seed coins: %v", err)
	}

	updated, err := svc.Purchase(pet.ID, "kibble")
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if updated.Coins != 25 || updated.HasItem("kibble") != 1 {
		t.Errorf("after purchase: coins=%d qty=%d", updated.Coins, updated.HasItem("kibble"))
	}

	// Buying again stacks the quantity.
	updated, err = svc.Purchase(pet.ID, "kibble")
	if err != nil {
		t.Fatalf("second purchase: %v", err)
	}
	if updated.Coins != 20 || updated.HasItem("kibble") != 2 {
		t.Errorf("after restock: coins=%d qty=%d", updated.Coins, updated.HasItem("kibble"))
	}

	if _, err := svc.Purchase(pet.ID, "unobtainium"); !errors.Is(err, domain.ErrUnknownItem) {
		t.Errorf("expected unknown item, got %v", err)
	}
	if _, err := svc.Equip(pet.ID, "kibble"); !errors.Is(err, domain.ErrNotAccessory) {
		t.Errorf("expected not-an-accessory, got %v", err)
	}
	if _, err := svc.Equip(pet.ID, "top hat"); !errors.Is(err, domain.ErrItemNotOwned) {
		t.Errorf("expected not owned, got %v", err)
	}

	updated, err = svc.Purchase(pet.ID, "red bandana")
	if err != nil {
		t.Fatalf("buy bandana: %v", err)
	}
	if updated.Coins != 0 {
		t.Errorf("coins = %d, want 0", updated.Coins)
	}

	updated, err = svc.Equip(pet.ID, "red bandana")
	if err != nil {
		t.Fatalf("equip: %v", err)
	}
	if len(updated.EquippedAccessories) != 1 || updated.EquippedAccessories[0] != "red bandana" {
		t.Errorf("equipped = %v", updated.EquippedAccessories)
	}

	updated, err = svc.Unequip(pet.ID, "red bandana")
	if err != nil {
		t.Fatalf("unequip: %v", err)
	}
	if len(updated.EquippedAccessories) != 0 {
		t.Errorf("still equipped: %v", updated.EquippedAccessories)
	}
	if _, err := svc.Unequip(pet.ID, "red bandana"); !errors.Is(err, domain.ErrItemNotOwned) {
		t.Errorf("expected not owned on double unequip, got %v", err)
	}
}

func TestCatalog_Fixed(t *testing.T) {
	items := keeper.Catalog()
	if len(items) != 7 {
		t.Fatalf("catalog size = %d, want 7", len(items))
	}
	for _, it := range items {
		if it.Price <= 0 || it.Name == "" || it.Kind == "" {
			t.Errorf("malformed catalog entry: %+v", it)
		}
	}
}

func TestDelete_RemovesPet(t *testing.T) {
	svc, _, _ := testService(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	pet := createPet(t, svc, now)

	if err := svc.Delete(pet.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(pet.ID); !errors.Is(err, domain.ErrPetNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(pet.ID); !errors.Is(err, domain.ErrPetNotFound) {
		t.Errorf("double delete should report not found, got %v", err)
	}
}
