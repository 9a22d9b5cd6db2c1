package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"business-tracker-api/internal/database"
	"business-tracker-api/internal/models"

	"github.com/stretchr/testify/require"
)

type projectsResponse struct {
	Projects []models.Project `json:"projects"`
	Count    int              `json:"count"`
}

func TestCreateProject_AndConflict(t *testing.T) {
	r := setupRouter(t)
	admin := seedUser(t, "admin", models.RoleAdmin, "")
	token := tokenFor(t, admin)

	payload := map[string]any{
		"internalNumber": "P-100",
		"customer":       "Acme Steel",
		"description":    "Conveyor line",
		"status":         "tech office",
		"deliveryDate":   "2025-06-01",
	}
	w := doJSON(t, r, http.MethodPost, "/api/projects", token, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Project
	decodeBody(t, w, &created)
	require.Equal(t, "P-100", created.InternalNumber)
	require.NotNil(t, created.DeliveryDate)

	// duplicate internal number
	w = doJSON(t, r, http.MethodPost, "/api/projects", token, payload)
	require.Equal(t, http.StatusConflict, w.Code)

	// missing required description
	w = doJSON(t, r, http.MethodPost, "/api/projects", token, map[string]any{
		"internalNumber": "P-101",
		"status":         "tech office",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// malformed date
	w = doJSON(t, r, http.MethodPost, "/api/projects", token, map[string]any{
		"internalNumber": "P-102",
		"description":    "d",
		"status":         "s",
		"invoiceDate":    "June 2025",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProjects_FiltersAndOrdering(t *testing.T) {
	r := setupRouter(t)
	admin := seedUser(t, "admin", models.RoleAdmin, "")
	token := tokenFor(t, admin)

	db := database.GetDB()
	require.NoError(t, db.Create(&models.Project{InternalNumber: "P-200", Customer: "Copper Co", Description: "Crusher rebuild", Expert: "Navid", Status: "production"}).Error)
	require.NoError(t, db.Create(&models.Project{InternalNumber: "P-050", Customer: "Acme Steel", Description: "Conveyor line", Expert: "Sara", Status: "inspection"}).Error)

	var resp projectsResponse
	w := doJSON(t, r, http.MethodGet, "/api/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	require.Equal(t, 2, resp.Count)
	// ordered by internal number
	require.Equal(t, "P-050", resp.Projects[0].InternalNumber)

	w = doJSON(t, r, http.MethodGet, "/api/projects?status=production", token, nil)
	decodeBody(t, w, &resp)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "P-200", resp.Projects[0].InternalNumber)

	w = doJSON(t, r, http.MethodGet, "/api/projects?customer=Acme", token, nil)
	decodeBody(t, w, &resp)
	require.Equal(t, 1, resp.Count)

	// search spans description and internal number
	w = doJSON(t, r, http.MethodGet, "/api/projects?search=Crusher", token, nil)
	decodeBody(t, w, &resp)
	require.Equal(t, 1, resp.Count)
	w = doJSON(t, r, http.MethodGet, "/api/projects?search=P-050", token, nil)
	decodeBody(t, w, &resp)
	require.Equal(t, 1, resp.Count)

	w = doJSON(t, r, http.MethodGet, "/api/projects?expert=Nav", token, nil)
	decodeBody(t, w, &resp)
	require.Equal(t, 1, resp.Count)
}

func TestUpdateProject_PartialPatch(t *testing.T) {
	r := setupRouter(t)
	admin := seedUser(t, "admin", models.RoleAdmin, "")
	token := tokenFor(t, admin)

	project := models.Project{InternalNumber: "P-300", Description: "Original", Status: "tech office", Expert: "Navid"}
	require.NoError(t, database.GetDB().Create(&project).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ID), token, map[string]any{
		"status": "production",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Project
	decodeBody(t, w, &updated)
	require.Equal(t, "production", updated.Status)
	require.Equal(t, "Original", updated.Description)
	require.Equal(t, "Navid", updated.Expert)

	w = doJSON(t, r, http.MethodPut, "/api/projects/99999", token, map[string]any{"status": "x"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProject_Permissions(t *testing.T) {
	r := setupRouter(t)
	admin := seedUser(t, "admin", models.RoleAdmin, "")
	worker := seedUser(t, "worker", models.RoleUser, "")

	project := models.Project{InternalNumber: "P-400", Description: "d", Status: "s"}
	require.NoError(t, database.GetDB().Create(&project).Error)

	// tasks keep their project reference after deletion
	task := seedTask(t, models.Task{Title: "linked", AssignedTo: worker.ID, AssignedBy: admin.ID, ProjectID: &project.ID})

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), tokenFor(t, worker), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var remaining models.Task
	require.NoError(t, database.GetDB().First(&remaining, task.ID).Error)
	require.NotNil(t, remaining.ProjectID)
}
