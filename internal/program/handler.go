package program

import (
	"bytes"
	"encoding/json"
	"memoras-backend/auth"
	"memoras-backend/internal/errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// decodeStrict rejects payload keys the form does not declare. Section forms
// enumerate their fields exhaustively, so an unknown key is a client error,
// unlike the memorial update path where extras are ignored.
func decodeStrict(raw []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

// SaveHandler is a create-or-replace endpoint for a singleton section.
// Responses echo both the section row and the updated memorial.
func SaveHandler[F any, M any](s *Service, def SectionDef[F, M]) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			c.Error(errors.BadRequest("Invalid request body", err))
			return
		}

		var form F
		if err := decodeStrict(raw, &form); err != nil {
			c.Error(errors.FromStrictJSON(err))
			return
		}
		if err := binding.Validator.ValidateStruct(&form); err != nil {
			c.Error(errors.FromBinding(err))
			return
		}

		row, m, err := saveSection(c.Request.Context(), s, def, c.Param("id"), auth.IdentityFrom(c), &form)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       def.Label + " saved successfully",
			def.ResponseKey: row,
			"memorial":      m.ToResponse(false),
		})
	}
}

func GetHandler[F any, M any](s *Service, def SectionDef[F, M]) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := getSection(c.Request.Context(), s, def, c.Param("id"), auth.IdentityFrom(c))
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{def.ResponseKey: row})
	}
}

func DeleteHandler[F any, M any](s *Service, def SectionDef[F, M]) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := deleteSection(c.Request.Context(), s, def, c.Param("id"), auth.IdentityFrom(c))
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": def.Label + " deleted successfully"})
	}
}

// Register wires the save/get/delete trio for one section under a router
// group, e.g. group /api/obituaries with segment "obituary".
func Register[F any, M any](rg *gin.RouterGroup, segment string, s *Service, def SectionDef[F, M]) {
	path := "/:id/" + segment
	rg.POST(path, SaveHandler(s, def))
	rg.PUT(path, SaveHandler(s, def))
	rg.GET(path, GetHandler(s, def))
	rg.DELETE(path, DeleteHandler(s, def))
}
