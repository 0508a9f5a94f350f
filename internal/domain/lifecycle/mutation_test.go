package lifecycle

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
)

func testRefs() (Refs, *entity.Stage, *entity.Stage, *entity.User, *entity.User) {
	open := &entity.Stage{ID: uuid.New(), Name: "Nuevo Prospecto", Type: enum.StageTypeOpen, Position: 1}
	won := &entity.Stage{ID: uuid.New(), Name: "Cliente", Type: enum.StageTypeWon, Position: 2}
	seller := &entity.User{ID: uuid.New(), Name: "Sofía Vendedora", Role: enum.RoleVendedor}
	manager := &entity.User{ID: uuid.New(), Name: "Marta Admin", Role: enum.RoleAdmin}

	refs := Refs{
		Stages: map[uuid.UUID]*entity.Stage{open.ID: open, won.ID: won},
		Users:  map[uuid.UUID]*entity.User{seller.ID: seller, manager.ID: manager},
	}
	return refs, open, won, seller, manager
}

func baseInput(stageID, ownerID uuid.UUID) FormSnapshot {
	return FormSnapshot{
		Name:     "Carlos Pérez",
		Company:  "Acme SA",
		Email:    "carlos@acme.test",
		Phone:    "+54 11 5555-0000",
		StatusID: stageID,
		OwnerID:  ownerID,
	}
}

func TestComputeNextLeadCreation(t *testing.T) {
	refs, open, _, seller, _ := testRefs()
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	lead, err := ComputeNextLead(nil, baseInput(open.ID, seller.ID), seller, refs, now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, lead.ID)
	assert.Equal(t, 1, lead.Version)
	assert.Equal(t, now, lead.CreatedAt)
	assert.Equal(t, now, lead.LastUpdate)
	require.Len(t, lead.StatusHistory, 1, "creation must record the first status entry")
	assert.Equal(t, open.ID, lead.StatusHistory[0].Status)
	assert.Empty(t, lead.TagHistory)
	assert.False(t, lead.NotificationForSeller)
	assert.Nil(t, lead.AffiliateNumber)
	assert.NotNil(t, lead.BillingHistory)
}

func TestComputeNextLeadUnknownStage(t *testing.T) {
	refs, _, _, seller, _ := testRefs()
	input := baseInput(uuid.New(), seller.ID)

	_, err := ComputeNextLead(nil, input, seller, refs, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation failed")
}

func TestComputeNextLeadUnknownOwner(t *testing.T) {
	refs, open, _, seller, _ := testRefs()
	input := baseInput(open.ID, uuid.New())

	_, err := ComputeNextLead(nil, input, seller, refs, time.Now())
	require.Error(t, err)
}

func TestStatusHistoryAppendsOnlyOnTransition(t *testing.T) {
	refs, open, won, seller, _ := testRefs()
	now := time.Now()

	lead, err := ComputeNextLead(nil, baseInput(open.ID, seller.ID), seller, refs, now)
	require.NoError(t, err)

	// Save with the same status: no history entry, version still bumps.
	lead2, err := ComputeNextLead(lead, baseInput(open.ID, seller.ID), seller, refs, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, lead2.StatusHistory, 1)
	assert.Equal(t, 2, lead2.Version)
	assert.True(t, lead2.LastUpdate.After(lead.LastUpdate))

	// Transition: one new entry.
	lead3, err := ComputeNextLead(lead2, baseInput(won.ID, seller.ID), seller, refs, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, lead3.StatusHistory, 2)
	assert.Equal(t, won.ID, lead3.StatusHistory[1].Status)
	assert.Equal(t, won.ID, lead3.StatusID)
}

func TestVersionEqualsNumberOfSaves(t *testing.T) {
	refs, open, _, seller, _ := testRefs()
	now := time.Now()

	var lead *entity.Lead
	var err error
	for i := 0; i < 5; i++ {
		lead, err = ComputeNextLead(lead, baseInput(open.ID, seller.ID), seller, refs, now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}
	assert.Equal(t, 5, lead.Version)
}

func TestTagHistoryKeyedOnFirstTag(t *testing.T) {
	refs, open, _, seller, _ := testRefs()
	now := time.Now()
	tagA := uuid.New()
	tagB := uuid.New()

	input := baseInput(open.ID, seller.ID)
	input.TagID = &tagA
	lead, err := ComputeNextLead(nil, input, seller, refs, now)
	require.NoError(t, err)
	require.Len(t, lead.TagHistory, 1)
	assert.Equal(t, entity.UUIDSlice{tagA}, lead.TagIDs)

	// Same tag again: no new history entry.
	lead2, err := ComputeNextLead(lead, input, seller, refs, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, lead2.TagHistory, 1)

	// Different tag: appended.
	input.TagID = &tagB
	lead3, err := ComputeNextLead(lead2, input, seller, refs, now.Add(2*time.Minute))
	require.NoError(t, err)
	require.Len(t, lead3.TagHistory, 2)
	assert.Equal(t, tagB, lead3.TagHistory[1].TagID)

	// Cleared tag: set emptied, history untouched.
	input.TagID = nil
	lead4, err := ComputeNextLead(lead3, input, seller, refs, now.Add(3*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, lead4.TagIDs)
	assert.Len(t, lead4.TagHistory, 2)
}

func TestObservationBlockFormat(t *testing.T) {
	refs, open, _, seller, manager := testRefs()
	now := time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)

	input := baseInput(open.ID, seller.ID)
	input.NewObservation = "  Llamar el lunes.  "
	lead, err := ComputeNextLead(nil, input, manager, refs, now)
	require.NoError(t, err)

	want := "---\n[10/03/2026 14:45] por Marta Admin:\nLlamar el lunes."
	assert.Equal(t, want, lead.Observations)

	// Second observation appends below the first.
	input.NewObservation = "Confirmado"
	lead2, err := ComputeNextLead(lead, input, seller, refs, now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(lead2.Observations, want))
	assert.Contains(t, lead2.Observations, "por Sofía Vendedora:\nConfirmado")
}

func TestWhitespaceObservationIsIgnored(t *testing.T) {
	refs, open, _, seller, manager := testRefs()

	input := baseInput(open.ID, seller.ID)
	input.NewObservation = "   \n\t "
	lead, err := ComputeNextLead(nil, input, manager, refs, time.Now())
	require.NoError(t, err)

	assert.Empty(t, lead.Observations)
	assert.False(t, lead.NotificationForSeller, "no observation means no seller flag")
}

func TestManagerObservationFlagsSeller(t *testing.T) {
	refs, open, _, seller, manager := testRefs()
	now := time.Now()

	lead, err := ComputeNextLead(nil, baseInput(open.ID, seller.ID), seller, refs, now)
	require.NoError(t, err)

	input := baseInput(open.ID, seller.ID)
	input.NewObservation = "Revisar propuesta"
	lead2, err := ComputeNextLead(lead, input, manager, refs, now.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, lead2.NotificationForSeller)
	require.NotNil(t, lead2.NotificationForManagerID)
	assert.Equal(t, manager.ID, *lead2.NotificationForManagerID)
	assert.False(t, lead2.SellerHasViewedNotification)
}

func TestSellerReplyMarksViewed(t *testing.T) {
	refs, open, _, seller, manager := testRefs()
	now := time.Now()

	lead, err := ComputeNextLead(nil, baseInput(open.ID, seller.ID), seller, refs, now)
	require.NoError(t, err)

	managerInput := baseInput(open.ID, seller.ID)
	managerInput.NewObservation = "Nota del supervisor"
	flagged, err := ComputeNextLead(lead, managerInput, manager, refs, now.Add(time.Minute))
	require.NoError(t, err)

	sellerInput := baseInput(open.ID, seller.ID)
	sellerInput.NewObservation = "Respondido"
	replied, err := ComputeNextLead(flagged, sellerInput, seller, refs, now.Add(2*time.Minute))
	require.NoError(t, err)

	assert.True(t, replied.SellerHasViewedNotification)
	assert.False(t, replied.NotificationForSeller)
	require.NotNil(t, replied.NotificationForManagerID)
	assert.Equal(t, manager.ID, *replied.NotificationForManagerID)
}

func TestSellerObservationWithoutManagerNote(t *testing.T) {
	refs, open, _, seller, _ := testRefs()
	now := time.Now()

	lead, err := ComputeNextLead(nil, baseInput(open.ID, seller.ID), seller, refs, now)
	require.NoError(t, err)

	input := baseInput(open.ID, seller.ID)
	input.NewObservation = "Nota propia"
	lead2, err := ComputeNextLead(lead, input, seller, refs, now.Add(time.Minute))
	require.NoError(t, err)

	// Not a reply to anything: the viewed flag stays down.
	assert.False(t, lead2.SellerHasViewedNotification)
	assert.False(t, lead2.NotificationForSeller)
}

func TestSellerSaveWithoutObservationCarriesViewedFlag(t *testing.T) {
	refs, open, _, seller, manager := testRefs()
	now := time.Now()

	lead, err := ComputeNextLead(nil, baseInput(open.ID, seller.ID), seller, refs, now)
	require.NoError(t, err)

	managerInput := baseInput(open.ID, seller.ID)
	managerInput.NewObservation = "Nota"
	flagged, err := ComputeNextLead(lead, managerInput, manager, refs, now.Add(time.Minute))
	require.NoError(t, err)

	sellerReply := baseInput(open.ID, seller.ID)
	sellerReply.NewObservation = "Visto"
	replied, err := ComputeNextLead(flagged, sellerReply, seller, refs, now.Add(2*time.Minute))
	require.NoError(t, err)
	require.True(t, replied.SellerHasViewedNotification)

	// A later save with no observation does not clear the pending reply flag.
	plain, err := ComputeNextLead(replied, baseInput(open.ID, seller.ID), seller, refs, now.Add(3*time.Minute))
	require.NoError(t, err)
	assert.True(t, plain.SellerHasViewedNotification)
}

func TestAffiliateNumberOnlySettableOnWonStage(t *testing.T) {
	refs, open, won, seller, _ := testRefs()
	now := time.Now()
	affiliate := "AF-1021"

	// On an open stage the affiliate number is ignored.
	input := baseInput(open.ID, seller.ID)
	input.AffiliateNumber = &affiliate
	lead, err := ComputeNextLead(nil, input, seller, refs, now)
	require.NoError(t, err)
	assert.Nil(t, lead.AffiliateNumber)

	// Moving to a won stage accepts it.
	wonInput := baseInput(won.ID, seller.ID)
	wonInput.AffiliateNumber = &affiliate
	winner, err := ComputeNextLead(lead, wonInput, seller, refs, now.Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, winner.AffiliateNumber)
	assert.Equal(t, affiliate, *winner.AffiliateNumber)

	// Moving back to an open stage carries it, never clears it.
	back, err := ComputeNextLead(winner, baseInput(open.ID, seller.ID), seller, refs, now.Add(2*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, back.AffiliateNumber)
	assert.Equal(t, affiliate, *back.AffiliateNumber)
}

func TestEmptyProviderAndOfficeNormalizedToNil(t *testing.T) {
	refs, open, _, seller, _ := testRefs()

	empty := "   "
	nilID := uuid.Nil
	input := baseInput(open.ID, seller.ID)
	input.AssignedOffice = &empty
	input.ProviderID = &nilID

	lead, err := ComputeNextLead(nil, input, seller, refs, time.Now())
	require.NoError(t, err)
	assert.Nil(t, lead.AssignedOffice)
	assert.Nil(t, lead.ProviderID)
}

func TestHistoryCopiesDoNotAliasPrevious(t *testing.T) {
	refs, open, won, seller, _ := testRefs()
	now := time.Now()

	lead, err := ComputeNextLead(nil, baseInput(open.ID, seller.ID), seller, refs, now)
	require.NoError(t, err)
	lead.BillingHistory["03-2026"] = true

	next, err := ComputeNextLead(lead, baseInput(won.ID, seller.ID), seller, refs, now.Add(time.Minute))
	require.NoError(t, err)

	next.BillingHistory["04-2026"] = true
	next.StatusHistory[0].Status = uuid.New()

	assert.NotContains(t, lead.BillingHistory, "04-2026")
	assert.Equal(t, open.ID, lead.StatusHistory[0].Status)
}
