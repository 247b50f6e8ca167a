package resource

import (
	"teamprompt/internal/models"
	"teamprompt/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, lib *services.Library) {
	h := NewHandler(lib)
	repo := lib.Repo

	folders := router.Group("/folders")
	(&crud[models.Folder, *models.Folder]{store: repo.Folders, noun: "Folder"}).register(folders)
	folders.GET("/:id/references", references(lib.FolderReferences))

	departments := router.Group("/departments")
	(&crud[models.Department, *models.Department]{store: repo.Departments, noun: "Department"}).register(departments)
	departments.GET("/:id/references", references(lib.DepartmentReferences))

	teams := router.Group("/teams")
	(&crud[models.Team, *models.Team]{store: repo.Teams, noun: "Team"}).register(teams)
	teams.GET("/:id/references", references(lib.TeamReferences))

	members := router.Group("/members")
	members.GET("/current", h.CurrentMember)
	(&crud[models.Member, *models.Member]{store: repo.Members, noun: "Member"}).register(members)

	collections := router.Group("/collections")
	(&crud[models.Collection, *models.Collection]{store: repo.Collections, noun: "Collection"}).register(collections)
	collections.POST("/:id/prompts", h.AddCollectionPrompt)
	collections.DELETE("/:id/prompts/:promptId", h.RemoveCollectionPrompt)

	standards := router.Group("/standards")
	(&crud[models.Standard, *models.Standard]{store: repo.Standards, noun: "Standard"}).register(standards)
}
