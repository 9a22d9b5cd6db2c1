package authz

import (
	"testing"

	"business-tracker-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestCanViewTask(t *testing.T) {
	boss := models.User{ID: 1, Role: models.RoleBoss}
	admin := models.User{ID: 2, Role: models.RoleAdmin}
	user := models.User{ID: 3, Role: models.RoleUser}
	leaderID := admin.ID

	unrelated := models.Task{AssignedTo: 9, AssignedBy: 8}
	require.True(t, CanViewTask(boss, unrelated))
	require.False(t, CanViewTask(admin, unrelated))
	require.False(t, CanViewTask(user, unrelated))

	createdByAdmin := models.Task{AssignedTo: 9, AssignedBy: admin.ID}
	require.True(t, CanViewTask(admin, createdByAdmin))

	ledByAdmin := models.Task{AssignedTo: 9, AssignedBy: 8, LeaderID: &leaderID}
	require.True(t, CanViewTask(admin, ledByAdmin))

	assignedToAdmin := models.Task{AssignedTo: admin.ID, AssignedBy: 8}
	require.True(t, CanViewTask(admin, assignedToAdmin))

	assignedToUser := models.Task{AssignedTo: user.ID, AssignedBy: 8}
	require.True(t, CanViewTask(user, assignedToUser))
}

func TestRoleCapabilities(t *testing.T) {
	boss := models.User{Role: models.RoleBoss}
	admin := models.User{Role: models.RoleAdmin}
	user := models.User{Role: models.RoleUser}

	require.True(t, CanManageTasks(boss))
	require.True(t, CanManageTasks(admin))
	require.False(t, CanManageTasks(user))

	require.True(t, CanDeleteProjects(boss))
	require.True(t, CanDeleteProjects(admin))
	require.False(t, CanDeleteProjects(user))

	require.True(t, CanManageCustomers(boss))
	require.False(t, CanManageCustomers(admin))
	require.False(t, CanManageCustomers(user))

	require.True(t, CanRunFollowUpSweep(boss))
	require.True(t, CanRunFollowUpSweep(admin))
	require.False(t, CanRunFollowUpSweep(user))

	require.True(t, CanUseBroadFilters(admin))
	require.False(t, CanUseBroadFilters(user))

	require.True(t, CanEditTaskDetails(admin))
	require.False(t, CanEditTaskDetails(user))
}
