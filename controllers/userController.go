package controllers

import (
	"context"
	"errors"
	"net/http"

	"boutique-tailoring/helpers"
	"boutique-tailoring/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MasterService interface {
	CreateMaster(ctx context.Context, in *models.MasterInput, photo *models.Attachment) (int64, error)
	ListMasters(ctx context.Context) ([]models.Master, error)
	GetMaster(ctx context.Context, id int64) (models.Master, error)
	UpdateMaster(ctx context.Context, in *models.MasterUpdate) (models.Master, error)
	DeleteMaster(ctx context.Context, id int64) error
}

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (models.LoginResult, error)
}

// WebsocketServer is the realtime hub as seen by the HTTP layer.
type WebsocketServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

func GetUsers(svc MasterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListMasters(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
	}
}

func GetUser(svc MasterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := requiredQueryID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		user, err := svc.GetMaster(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// AddMaster takes a multipart form with an optional profile_image file, or
// a JSON body.
func AddMaster(svc MasterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.MasterInput
		var photo *models.Attachment

		if isMultipart(c) {
			if err := c.ShouldBindWith(&in, binding.FormMultipart); err != nil {
				respondError(c, badRequest("invalid form: %v", err))
				return
			}
			fh, err := c.FormFile("profile_image")
			switch {
			case err == nil:
				a := helpers.FileAttachment(fh)
				photo = &a
			case !errors.Is(err, http.ErrMissingFile):
				respondError(c, badRequest("profile_image: %v", err))
				return
			}
		} else if err := decodeJSON(c, &in); err != nil {
			respondError(c, err)
			return
		}

		id, err := svc.CreateMaster(c.Request.Context(), &in, photo)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User created successfully", "user_id": id, "errors": noErrors})
	}
}

func UpdateUser(svc MasterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.MasterUpdate
		if err := decodeJSON(c, &in); err != nil {
			respondError(c, err)
			return
		}
		user, err := svc.UpdateMaster(c.Request.Context(), &in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated successfully", "user": user})
	}
}

func DeleteUser(svc MasterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := requiredQueryID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.DeleteMaster(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
	}
}

func Login(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := decodeJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		res, err := svc.Login(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"message":       "Login successful",
			"user":          res.User,
			"token":         res.Token,
			"refresh_token": res.RefreshToken,
		})
	}
}

func HandleWebSocket(hub WebsocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	}
}
