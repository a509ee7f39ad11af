package usecases

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
)

const MaxGroupNameLength = 50

var validate = validator.New()

func ValidateUUID(rawUUID string) bool {
	_, err := uuid.Parse(rawUUID)
	return err == nil
}

func validateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return invalidf("%v", err)
	}
	return nil
}

// ValidateNewGroup checks the rules that do not need the store and returns the
// parsed group type.
func ValidateNewGroup(caller uuid.UUID, g *models.NewGroup) (models.GroupType, error) {
	if err := validateStruct(g); err != nil {
		return "", err
	}

	t, ok := models.ParseGroupType(g.Type)
	if !ok {
		return "", invalidf("unknown group type %q", g.Type)
	}

	switch t {
	case models.GroupTypePublic, models.GroupTypePrivate:
		if l := utf8.RuneCountInString(g.Name); l == 0 || l > MaxGroupNameLength {
			return "", invalidf("group name must be 1..%d characters long", MaxGroupNameLength)
		}
	case models.GroupTypeChat:
		if len(g.Invitations) != 1 {
			return "", invalidf("chat requires exactly one invitation")
		}
		if g.HaveImage {
			return "", invalidf("chat can not have an image")
		}
	}

	for _, inv := range g.Invitations {
		if inv.InvitedUser.ID == uuid.Nil {
			return "", invalidf("invited user id is required")
		}
		if inv.InvitedUser.ID == caller {
			return "", invalidf("user can not invite themselves")
		}
	}

	return t, nil
}
