package commands

import (
	"context"
	"log/slog"
	"strings"

	application "merx/contexts/commerce/catalog-service/application"
	"merx/contexts/commerce/catalog-service/domain/entities"
	domainerrors "merx/contexts/commerce/catalog-service/domain/errors"
	"merx/contexts/commerce/catalog-service/ports"
)

type SaveContactGroupUseCase struct {
	Contacts    ports.ContactRepository
	Invalidator ports.PromotionInvalidator
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type SaveContactGroupCommand struct {
	Group entities.ContactGroup
}

func (uc SaveContactGroupUseCase) Execute(ctx context.Context, cmd SaveContactGroupCommand) (entities.ContactGroup, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	group := cmd.Group
	group.Name = strings.TrimSpace(group.Name)
	if !group.ValidateBasics() {
		return entities.ContactGroup{}, domainerrors.ErrInvalidGroupInput
	}

	if group.GroupID == "" {
		id, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.ContactGroup{}, err
		}
		group.GroupID = id
		group.CreatedAt = now
	}
	group.UpdatedAt = now

	if err := uc.Contacts.SaveContactGroup(ctx, group); err != nil {
		return entities.ContactGroup{}, err
	}
	if err := uc.Invalidator.EntityChanged(ctx, entityKindContactGroup, group.ShopID, group.GroupID); err != nil {
		return entities.ContactGroup{}, err
	}

	logger.Info("contact group saved",
		"event", "contact_group_saved",
		"module", "commerce/catalog-service",
		"layer", "application",
		"group_id", group.GroupID,
	)
	return group, nil
}

// ReplaceContactGroupsUseCase rewrites a contact's group memberships.
// Promotion-side context caches keyed by the customer are dropped in the
// same call, so a match right after the change sees the new groups.
type ReplaceContactGroupsUseCase struct {
	Contacts    ports.ContactRepository
	Invalidator ports.PromotionInvalidator
	Logger      *slog.Logger
}

type ReplaceContactGroupsCommand struct {
	ShopID    string
	ContactID string
	GroupIDs  []string
}

func (uc ReplaceContactGroupsUseCase) Execute(ctx context.Context, cmd ReplaceContactGroupsCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	contactID := strings.TrimSpace(cmd.ContactID)
	if contactID == "" {
		return domainerrors.ErrInvalidGroupInput
	}
	if err := uc.Contacts.ReplaceContactGroups(ctx, contactID, cmd.GroupIDs); err != nil {
		return err
	}
	if err := uc.Invalidator.EntityChanged(ctx, entityKindContactGroup, cmd.ShopID, contactID); err != nil {
		return err
	}

	logger.Info("contact groups replaced",
		"event", "contact_groups_replaced",
		"module", "commerce/catalog-service",
		"layer", "application",
		"contact_id", contactID,
		"group_count", len(cmd.GroupIDs),
	)
	return nil
}
