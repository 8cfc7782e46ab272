package server

import (
	"bislerium/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary Post feed
// @Description One page of active posts with vote tallies, popularity and a comment preview
// @Tags posts
// @Produce json
// @Param page query int false "1-indexed page" default(1)
// @Param pageSize query int false "Items per page"
// @Param sortBy query string false "recency, popularity; anything else shuffles"
// @Success 200 {object} service.FeedPage
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := s.parsePage(c)
	userID, _ := s.optionalUserID(c)

	feed, err := s.feedService.GetPostFeed(c.UserContext(), service.FeedInput{
		Page:     page.Number,
		PageSize: page.Size,
		SortBy:   c.Query("sortBy"),
		ViewerID: userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// GetMyPosts handles GET /api/posts/mine
// @Summary Author feed
// @Description One page of the caller's own active posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-indexed page" default(1)
// @Param pageSize query int false "Items per page"
// @Param sortBy query string false "recency, popularity; anything else shuffles"
// @Success 200 {object} service.FeedPage
// @Failure 401 {object} models.ErrorResponse
// @Router /posts/mine [get]
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	page := s.parsePage(c)

	feed, err := s.feedService.GetAuthorFeed(c.UserContext(), service.FeedInput{
		Page:     page.Number,
		PageSize: page.Size,
		SortBy:   c.Query("sortBy"),
		ViewerID: viewerID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// GetPost handles GET /api/posts/:id
// @Summary Post detail
// @Description A post with its full comment tree
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} engagement.PostView
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	view, err := s.feedService.GetPostDetail(c.UserContext(), id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// GetDashboard handles GET /api/admin/dashboard
// @Summary Admin dashboard
// @Description Global counts with the top posts and authors by popularity
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} engagement.Dashboard
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	d, err := s.dashboardService.GetDashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}
