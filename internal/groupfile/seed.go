package groupfile

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/roach88/giftcycle/internal/domain"
)

var validate = validator.New()

// Seed validates f and resolves it into a domain.Seed. Missing ids are taken
// from ids; exclusion references are resolved to participant ids; mutual
// exclusions are expanded and duplicates collapsed.
//
// All problems found are reported together in one INVALID_ARGUMENT error.
func (f *File) Seed(ids domain.IDGenerator) (domain.Seed, error) {
	if err := validate.Struct(f.Group); err != nil {
		return domain.Seed{}, invalid(err)
	}

	var problems []error
	for i, p := range f.Participants {
		if err := validate.Struct(p); err != nil {
			problems = append(problems, fmt.Errorf("participants[%d]: %w", i, err))
			continue
		}
		switch {
		case domain.NormalizeName(p.Name) == "":
			problems = append(problems, fmt.Errorf("participants[%d]: name is empty", i))
		case p.Proxy && p.User != "":
			problems = append(problems, fmt.Errorf("participants[%d] %q: proxy participants have no user", i, p.Name))
		case !p.Proxy && p.User == "":
			problems = append(problems, fmt.Errorf("participants[%d] %q: user is required unless proxy is set", i, p.Name))
		}
	}

	users := lo.FilterMap(f.Participants, func(p ParticipantDef, _ int) (string, bool) {
		return p.User, p.User != ""
	})
	for _, dup := range lo.FindDuplicates(users) {
		problems = append(problems, fmt.Errorf("user %q appears more than once", dup))
	}

	groupID := f.Group.ID
	if groupID == "" {
		groupID = ids.Generate()
	}

	participants := lo.Map(f.Participants, func(p ParticipantDef, _ int) domain.Participant {
		id := p.ID
		if id == "" {
			id = ids.Generate()
		}
		return domain.Participant{
			ID:      id,
			GroupID: groupID,
			UserID:  p.User,
			Name:    domain.NormalizeName(p.Name),
			Proxy:   p.Proxy,
		}
	})
	for _, dup := range lo.FindDuplicates(lo.Map(participants, func(p domain.Participant, _ int) string { return p.ID })) {
		problems = append(problems, fmt.Errorf("participant id %q appears more than once", dup))
	}

	resolve := resolver(participants)
	var exclusions []domain.Exclusion
	for i, ex := range f.Exclusions {
		if err := validate.Struct(ex); err != nil {
			problems = append(problems, fmt.Errorf("exclusions[%d]: %w", i, err))
			continue
		}
		who, err := resolve(ex.Who)
		if err != nil {
			problems = append(problems, fmt.Errorf("exclusions[%d].who: %w", i, err))
			continue
		}
		whom, err := resolve(ex.Whom)
		if err != nil {
			problems = append(problems, fmt.Errorf("exclusions[%d].whom: %w", i, err))
			continue
		}
		if who == whom {
			problems = append(problems, fmt.Errorf("exclusions[%d]: a participant cannot exclude themselves", i))
			continue
		}
		exclusions = append(exclusions, domain.Exclusion{GroupID: groupID, Who: who, Whom: whom})
		if ex.Mutual {
			exclusions = append(exclusions, domain.Exclusion{GroupID: groupID, Who: whom, Whom: who})
		}
	}

	if len(problems) > 0 {
		return domain.Seed{}, invalid(errors.Join(problems...))
	}

	exclusions = lo.UniqBy(exclusions, func(ex domain.Exclusion) [2]string {
		return [2]string{ex.Who, ex.Whom}
	})
	for i := range exclusions {
		exclusions[i].ID = ids.Generate()
	}

	return domain.Seed{
		Group: domain.Group{
			ID:      groupID,
			Title:   f.Group.Title,
			OwnerID: f.Group.Owner,
			Status:  domain.StatusDraft,
		},
		Participants: participants,
		Exclusions:   exclusions,
	}, nil
}

// resolver maps a participant reference to an id. A reference matches an id
// first, then a unique normalized display name.
func resolver(participants []domain.Participant) func(ref string) (string, error) {
	byID := lo.KeyBy(participants, func(p domain.Participant) string { return p.ID })
	byName := lo.GroupBy(participants, func(p domain.Participant) string { return p.Name })

	return func(ref string) (string, error) {
		if _, ok := byID[ref]; ok {
			return ref, nil
		}
		matches := byName[domain.NormalizeName(ref)]
		switch len(matches) {
		case 0:
			return "", fmt.Errorf("unknown participant %q", ref)
		case 1:
			return matches[0].ID, nil
		default:
			return "", fmt.Errorf("participant name %q is ambiguous, use an id", ref)
		}
	}
}

func invalid(err error) error {
	return &domain.Error{
		Code:    domain.CodeInvalidArgument,
		Message: "invalid group file",
		Err:     err,
	}
}
