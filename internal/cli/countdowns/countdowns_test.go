package countdowns

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/countdownctl/internal/cli"
	"github.com/julianstephens/countdownctl/internal/config"
	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/emulator"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/storage"
)

type fixture struct {
	srv   *emulator.Server
	store storage.Provider
	out   *bytes.Buffer
	ctx   *cli.Context
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store, err := emulator.OpenStore(filepath.Join(t.TempDir(), "emulator.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv, err := emulator.New(store)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := config.Default()
	cfg.Device.URL = ts.URL
	cfg.Device.ScanDelay = 0

	var out bytes.Buffer
	ctx := cli.NewContext(cfg)
	ctx.Out = &out
	ctx.Confirm = func(string) bool { return false }
	return &fixture{srv: srv, store: store, out: &out, ctx: ctx}
}

func (f *fixture) seed(t *testing.T, cds ...models.Countdown) {
	t.Helper()
	for _, cd := range cds {
		require.NoError(t, f.store.AddCountdown(cd))
	}
}

func TestListCmd_Empty(t *testing.T) {
	f := setup(t)
	require.NoError(t, (&ListCmd{}).Run(f.ctx))
	assert.Equal(t, constants.ListEmpty, strings.TrimSpace(f.out.String()))
}

func TestAddCmd_ThenList(t *testing.T) {
	f := setup(t)

	cmd := &AddCmd{UID: "aabbccdd", Name: "Urlaub", Date: "2030-07-01"}
	require.NoError(t, cmd.Run(f.ctx))
	assert.Contains(t, f.out.String(), constants.NoticeSaved)

	stored, err := f.store.GetCountdown("AABBCCDD")
	require.NoError(t, err)
	assert.Equal(t, "Urlaub", stored.Name)
	assert.True(t, stored.Active)

	f.out.Reset()
	require.NoError(t, (&ListCmd{}).Run(f.ctx))
	assert.Contains(t, f.out.String(), "Urlaub")
	assert.Contains(t, f.out.String(), constants.UIDLinePrefix+"AABBCCDD")
}

func TestAddCmd_Validation(t *testing.T) {
	f := setup(t)

	err := (&AddCmd{Name: "Urlaub", Date: "2030-07-01"}).Run(f.ctx)
	require.Error(t, err)
	assert.Contains(t, f.out.String(), constants.FormMissingUID)

	f.out.Reset()
	err = (&AddCmd{UID: "AABBCCDD", Name: "Urlaub", Date: "01.07.2030"}).Run(f.ctx)
	require.Error(t, err)
	assert.Contains(t, f.out.String(), constants.FormInvalidDate)

	list, err := f.store.ListCountdowns()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddCmd_Duplicate(t *testing.T) {
	f := setup(t)
	f.seed(t, models.Countdown{UID: "AABBCCDD", Name: "Alt", TargetDate: "2030-01-01", Active: true})

	err := (&AddCmd{UID: "AABBCCDD", Name: "Neu", Date: "2030-07-01"}).Run(f.ctx)
	require.Error(t, err)
	assert.Contains(t, f.out.String(), constants.NoticeErrorPrefix+constants.ReasonAddFailed)
}

func TestAddCmd_Scan(t *testing.T) {
	f := setup(t)
	f.srv.Reader().Present("11223344")

	cmd := &AddCmd{Name: "Geburtstag", Date: "2030-03-14", Scan: true, Inactive: true}
	require.NoError(t, cmd.Run(f.ctx))
	assert.Contains(t, f.out.String(), constants.NoticeScanned+"11223344")

	stored, err := f.store.GetCountdown("11223344")
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestEditCmd(t *testing.T) {
	f := setup(t)
	f.seed(t,
		models.Countdown{UID: "AABBCCDD", Name: "Urlaub", TargetDate: "2030-07-01", Active: true},
		models.Countdown{UID: "11223344", Name: "Geburtstag", TargetDate: "2030-03-14", Active: true},
	)

	cmd := &EditCmd{Current: "aabbccdd", UID: "55667788", Name: "Sommerurlaub", Inactive: true}
	require.NoError(t, cmd.Run(f.ctx))
	assert.Contains(t, f.out.String(), constants.NoticeSaved)

	list, err := f.store.ListCountdowns()
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Rekeyed in place, date kept.
	assert.Equal(t, models.Countdown{UID: "55667788", Name: "Sommerurlaub", TargetDate: "2030-07-01", Active: false}, list[0])
	assert.Equal(t, "11223344", list[1].UID)
}

func TestEditCmd_StoredLowercase(t *testing.T) {
	f := setup(t)
	f.seed(t, models.Countdown{UID: "aabbccdd", Name: "Urlaub", TargetDate: "2030-07-01", Active: true})

	for _, arg := range []string{"aabbccdd", "AABBCCDD"} {
		f.out.Reset()
		require.NoError(t, (&EditCmd{Current: arg, UID: arg, Name: "Sommerurlaub"}).Run(f.ctx), arg)
		assert.Contains(t, f.out.String(), constants.NoticeSaved)
	}

	list, err := f.store.ListCountdowns()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "AABBCCDD", list[0].UID)
	assert.Equal(t, "Sommerurlaub", list[0].Name)
}

func TestEditCmd_Unknown(t *testing.T) {
	f := setup(t)
	err := (&EditCmd{Current: "DEADBEEF", Name: "x"}).Run(f.ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEADBEEF")
}

func TestDeleteCmd(t *testing.T) {
	f := setup(t)
	f.seed(t, models.Countdown{UID: "AABBCCDD", Name: "Urlaub", TargetDate: "2030-07-01", Active: true})

	// Declined confirmation keeps the record.
	require.NoError(t, (&DeleteCmd{UID: "aabbccdd"}).Run(f.ctx))
	_, err := f.store.GetCountdown("AABBCCDD")
	require.NoError(t, err)

	require.NoError(t, (&DeleteCmd{UID: "aabbccdd", Yes: true}).Run(f.ctx))
	assert.Contains(t, f.out.String(), constants.NoticeDeleted)
	_, err = f.store.GetCountdown("AABBCCDD")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteCmd_StoredLowercase(t *testing.T) {
	f := setup(t)
	f.seed(t,
		models.Countdown{UID: "aabbccdd", Name: "Urlaub", TargetDate: "2030-07-01", Active: true},
		models.Countdown{UID: "11223344", Name: "Geburtstag", TargetDate: "2030-03-14", Active: true},
	)

	require.NoError(t, (&DeleteCmd{UID: "aabbccdd", Yes: true}).Run(f.ctx))
	assert.Contains(t, f.out.String(), constants.NoticeDeleted)
	_, err := f.store.GetCountdown("aabbccdd")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// A typed card uid still reaches the record stored in lowercase.
	f.seed(t, models.Countdown{UID: "deadbeef", Name: "Ostern", TargetDate: "2030-04-20"})
	require.NoError(t, (&DeleteCmd{UID: "DEADBEEF", Yes: true}).Run(f.ctx))
	_, err = f.store.GetCountdown("deadbeef")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := f.store.ListCountdowns()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "11223344", list[0].UID)
}

func TestDeleteCmd_Unknown(t *testing.T) {
	f := setup(t)
	err := (&DeleteCmd{UID: "DEADBEEF", Yes: true}).Run(f.ctx)
	require.Error(t, err)
	assert.Contains(t, f.out.String(), constants.NoticeDeletePrefix+constants.ReasonDeleteFailed)
}

func TestScanCmd(t *testing.T) {
	f := setup(t)

	err := (&ScanCmd{}).Run(f.ctx)
	require.Error(t, err)
	assert.Contains(t, f.out.String(), constants.NoticeNoCard)

	f.out.Reset()
	f.srv.Reader().Present("CAFEBABE")
	require.NoError(t, (&ScanCmd{}).Run(f.ctx))
	assert.Contains(t, f.out.String(), constants.NoticeScanned+"CAFEBABE")
}
