// Package authz centralizes every role capability rule. Handlers never
// compare roles directly; they ask this package.
package authz

import (
	"business-tracker-api/internal/models"
)

// CanViewTask reports whether u may open a single task. Bosses see
// everything; admins see tasks they created, lead, or were assigned;
// users see only their own assignments.
func CanViewTask(u models.User, t models.Task) bool {
	switch u.Role {
	case models.RoleBoss:
		return true
	case models.RoleAdmin:
		return t.AssignedBy == u.ID || (t.LeaderID != nil && *t.LeaderID == u.ID) || t.AssignedTo == u.ID
	case models.RoleUser:
		return t.AssignedTo == u.ID
	}
	return false
}

// CanManageTasks reports whether u may create or delete tasks.
func CanManageTasks(u models.User) bool {
	return u.Role == models.RoleAdmin || u.Role == models.RoleBoss
}

// CanEditTaskDetails reports whether u may patch the administrative
// task fields (assignment, dates, level, type, admin comment). Plain
// users are limited to their completion percent and comment.
func CanEditTaskDetails(u models.User) bool {
	return u.Role == models.RoleAdmin || u.Role == models.RoleBoss
}

// CanDeleteProjects reports whether u may delete a project.
func CanDeleteProjects(u models.User) bool {
	return u.Role == models.RoleAdmin || u.Role == models.RoleBoss
}

// CanManageCustomers reports whether u may access customer records at
// all. Customers are boss-only, including read access.
func CanManageCustomers(u models.User) bool {
	return u.Role == models.RoleBoss
}

// CanRunFollowUpSweep reports whether loading the dashboard as u
// triggers the overdue follow-up scan.
func CanRunFollowUpSweep(u models.User) bool {
	return u.Role == models.RoleAdmin || u.Role == models.RoleBoss
}

// CanUseBroadFilters reports whether u may filter the task list by
// assignee, leader, section, or project. A plain user's scope is
// already narrowed to itself, so only the reduced filter set applies.
func CanUseBroadFilters(u models.User) bool {
	return u.Role == models.RoleAdmin || u.Role == models.RoleBoss
}
