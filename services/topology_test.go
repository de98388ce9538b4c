package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/tab-pos/models"
)

func TestTransferMovesWholeOccupation(t *testing.T) {
	e, _ := newTestEngine(t, models.ModeTable, 3)
	src := seat(t, e, "tab-1", 3, "p-twenty", "p-twenty", "p-ten")
	assertMoney(t, "50.00", src.Total)

	res, err := e.Transfer("tab-1", "tab-2")
	require.NoError(t, err)

	assert.Equal(t, "tab-2", res.Target.ID)
	assert.Equal(t, "Mesa 02", res.Target.Label)
	assert.Equal(t, models.TabOccupied, res.Target.Status)
	assertMoney(t, "50.00", res.Target.Total)
	assert.Equal(t, src.Items, res.Target.Items)
	assert.Equal(t, 3, res.Target.PeopleCount)
	assert.Equal(t, src.OpenedAt, res.Target.OpenedAt)

	assert.Equal(t, models.TabFree, res.Source.Status)
	assert.Empty(t, res.Source.Items)
	assertRegistryInvariants(t, e)
}

func TestTransferNeedsFreeTarget(t *testing.T) {
	e, rec := newTestEngine(t, models.ModeTable, 4)
	seat(t, e, "tab-1", 2, "p-ten")
	seat(t, e, "tab-2", 2, "p-five")
	_, err := e.Reserve("tab-3")
	require.NoError(t, err)
	snaps := len(rec.snaps)

	for _, target := range []string{"tab-1", "tab-2", "tab-3"} {
		_, err := e.Transfer("tab-1", target)
		assert.Equal(t, errInvalidTarget, err, target)
	}
	_, err = e.Transfer("tab-4", "tab-3")
	assert.True(t, IsPrecondition(err), "free source")
	_, err = e.Transfer("tab-1", "tab-9")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, rec.snaps, snaps)
}

func TestMergeAppendsSourceAfterTarget(t *testing.T) {
	e, _ := newTestEngine(t, models.ModeTable, 3)
	a := seat(t, e, "tab-1", 2, "p-twenty", "p-ten")
	b := seat(t, e, "tab-2", 5, "p-twenty")
	assertMoney(t, "30.00", a.Total)
	assertMoney(t, "20.00", b.Total)

	res, err := e.Merge("tab-1", "tab-2")
	require.NoError(t, err)

	assertMoney(t, "50.00", res.Target.Total)
	assert.Equal(t, append(lineIDs(b.Items), lineIDs(a.Items)...), lineIDs(res.Target.Items))
	assert.Equal(t, 5, res.Target.PeopleCount)
	assert.Equal(t, models.TabFree, res.Source.Status)
	assert.Empty(t, res.Source.Items)
	assertRegistryInvariants(t, e)
}

func TestMergeNeedsOccupiedDistinctTarget(t *testing.T) {
	e, _ := newTestEngine(t, models.ModeTable, 3)
	seat(t, e, "tab-1", 2, "p-ten")

	_, err := e.Merge("tab-1", "tab-1")
	assert.Equal(t, errInvalidTarget, err)
	_, err = e.Merge("tab-1", "tab-2")
	assert.Equal(t, errInvalidTarget, err)
}

func TestTransferItemsToFreeTab(t *testing.T) {
	e, _ := newTestEngine(t, models.ModeTable, 3)
	a := seat(t, e, "tab-1", 3, "p-ten", "p-five", "p-twenty")
	require.Len(t, a.Items, 3)

	res, err := e.TransferItems("tab-1", "tab-2", []string{a.Items[1].ID})
	require.NoError(t, err)

	assert.Equal(t, models.TabOccupied, res.Target.Status)
	require.NotNil(t, res.Target.OpenedAt)
	require.Len(t, res.Target.Items, 1)
	assert.Equal(t, a.Items[1].ID, res.Target.Items[0].ID)
	assertMoney(t, "5.00", res.Target.Total)

	assert.Equal(t, models.TabOccupied, res.Source.Status)
	assert.Equal(t, []string{a.Items[0].ID, a.Items[2].ID}, lineIDs(res.Source.Items))
	assertMoney(t, "30.00", res.Source.Total)
	assertRegistryInvariants(t, e)
}

func TestTransferItemsKeepsSourceOrder(t *testing.T) {
	e, _ := newTestEngine(t, models.ModeTable, 3)
	a := seat(t, e, "tab-1", 2, "p-ten", "p-five", "p-twenty")
	seat(t, e, "tab-2", 2, "p-ten")

	res, err := e.TransferItems("tab-1", "tab-2", []string{a.Items[2].ID, a.Items[0].ID, a.Items[2].ID})
	require.NoError(t, err)
	require.Len(t, res.Target.Items, 3)
	assert.Equal(t, []string{a.Items[0].ID, a.Items[2].ID}, lineIDs(res.Target.Items[1:]))
	assertMoney(t, "40.00", res.Target.Total)
	assertRegistryInvariants(t, e)
}

func TestTransferItemsErrors(t *testing.T) {
	e, rec := newTestEngine(t, models.ModeTable, 3)
	a := seat(t, e, "tab-1", 2, "p-ten", "p-five")
	_, err := e.Reserve("tab-3")
	require.NoError(t, err)
	snaps := len(rec.snaps)

	_, err = e.TransferItems("tab-1", "tab-2", nil)
	assert.Equal(t, errNoItems, err)
	_, err = e.TransferItems("tab-1", "tab-1", lineIDs(a.Items))
	assert.Equal(t, errInvalidTarget, err)
	_, err = e.TransferItems("tab-1", "tab-3", lineIDs(a.Items))
	assert.Equal(t, errInvalidTarget, err)
	_, err = e.TransferItems("tab-1", "tab-2", []string{a.Items[0].ID, "ghost"})
	assert.True(t, IsValidation(err))

	after, err := e.Tab("tab-2")
	require.NoError(t, err)
	assert.Equal(t, models.TabFree, after.Status, "failed move leaves the target alone")
	assert.Len(t, rec.snaps, snaps)
}

func TestTransferItemsCanEmptySource(t *testing.T) {
	e, _ := newTestEngine(t, models.ModeTable, 2)
	a := seat(t, e, "tab-1", 2, "p-ten")

	res, err := e.TransferItems("tab-1", "tab-2", lineIDs(a.Items))
	require.NoError(t, err)
	assert.Equal(t, models.TabOccupied, res.Source.Status)
	assert.Empty(t, res.Source.Items)
	assertMoney(t, "0.00", res.Source.Total)
}
