package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/laneboard/internal/services/network"
	"github.com/riordanpawley/laneboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnectivity struct {
	online bool
	checks int
}

func (f *fakeConnectivity) CheckCmd() tea.Cmd {
	f.checks++
	online := f.online
	return func() tea.Msg { return network.StatusMsg{Online: online} }
}

func TestModel_OfflineIndicator(t *testing.T) {
	m := newTestModel(loadedBoard(t, "statuscode", false))

	updated, cmd := m.Update(network.StatusMsg{Online: false})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.offline)
	require.Len(t, m.toasts, 1)
	assert.Equal(t, types.ToastWarning, m.toasts[0].Level)
	assert.Contains(t, ansi.Strip(m.View()), "OFFLINE")

	// A repeated offline report does not toast again
	updated, _ = m.Update(network.StatusMsg{Online: false})
	m = updated.(Model)
	assert.Len(t, m.toasts, 1)

	updated, _ = m.Update(network.StatusMsg{Online: true})
	m = updated.(Model)
	assert.False(t, m.offline)
	assert.Len(t, m.toasts, 2)
	assert.NotContains(t, ansi.Strip(m.View()), "OFFLINE")
}

func TestModel_ConnectivityCheck(t *testing.T) {
	conn := &fakeConnectivity{online: false}
	m := newTestModel(loadedBoard(t, "statuscode", false)).WithConnectivity(conn)

	updated, cmd := m.Update(checkConnectivityMsg{})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, conn.checks)

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.True(t, m.offline)
}

func TestModel_ConnectivityDisabled(t *testing.T) {
	m := newTestModel(loadedBoard(t, "statuscode", false))

	_, cmd := m.Update(checkConnectivityMsg{})
	assert.Nil(t, cmd)
}
