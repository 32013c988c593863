package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/infras/otel"
	"venus/internal/domains/notification/model"
	"venus/internal/domains/notification/model/dto"
	"venus/internal/domains/notification/repository"
	"venus/internal/events"
	"venus/shared"
	"venus/shared/constant"
	"venus/shared/failure"
	"venus/shared/timezone"
)

type Notification interface {
	ListForUser(ctx context.Context, userID string) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
	Record(ctx context.Context, event events.Event) error
}

type serviceImpl struct {
	repo repository.Notification
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Notification, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// ListForUser returns the user's feed, newest first. A user with an empty
// feed gets the demonstration set when it is enabled.
func (s *serviceImpl) ListForUser(ctx context.Context, userID string) (res []dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.ListForUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if actorID, _ := shared.ActorFromContext(ctx); actorID != constant.Empty && actorID != userID {
		return nil, failure.Forbidden("notifications belong to another user") //nolint:wrapcheck
	}

	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list notifications")

		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	if len(notifications) == 0 && s.cfg.App.Demo.Notifications {
		notifications = DemoSet(userID)
	}

	return dto.FromModels(notifications), nil
}

// MarkRead is a no-op when the notification does not exist.
func (s *serviceImpl) MarkRead(ctx context.Context, userID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.MarkRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	marked, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		log.Error().Err(err).Str("notification_id", id).Msg("failed to mark notification as read")

		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	log.Debug().Str("notification_id", id).Bool("marked", marked).Msg("notification read")

	return nil
}

// Record turns a domain event into notifications for the users it concerns.
func (s *serviceImpl) Record(ctx context.Context, event events.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Record")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	at := event.OccurredAt
	if at.IsZero() {
		at = timezone.Now()
	}

	notifications := fromEvent(event, at)
	if len(notifications) == 0 {
		return nil
	}

	if err = s.repo.Append(ctx, notifications...); err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Msg("failed to record notifications")

		return fmt.Errorf("failed to record notifications: %w", err)
	}

	return nil
}

// DemoSet is the fixed feed shown to users who have none, stamped with
// userID.
func DemoSet(userID string) []model.Notification {
	return []model.Notification{
		{
			ID:      "n1",
			UserID:  userID,
			Title:   "Reserva Confirmada",
			Message: "Sua reserva no Grand Vênus foi confirmada!",
			Date:    time.Date(2024, time.June, 2, 0, 0, 0, 0, timezone.GetLocation()),
			Read:    false,
			Type:    model.TypeSuccess,
		},
		{
			ID:      "n2",
			UserID:  userID,
			Title:   "Promoção Relâmpago",
			Message: "30% de desconto em resorts selecionados.",
			Date:    time.Date(2024, time.June, 5, 0, 0, 0, 0, timezone.GetLocation()),
			Read:    true,
			Type:    model.TypeInfo,
		},
	}
}

func fromEvent(event events.Event, at time.Time) []model.Notification {
	notify := func(userID, title, message string, kind model.Type) model.Notification {
		return model.Notification{
			ID:      uuid.NewString(),
			UserID:  userID,
			Title:   title,
			Message: message,
			Date:    at,
			Type:    kind,
		}
	}

	switch event.Kind {
	case events.AccountRegistered:
		message := "Sua conta foi criada. Boas viagens!"
		if event.UserRole == constant.RoleHotel {
			message = "Sua conta foi criada. Cadastre seus quartos para receber reservas."
		}

		return []model.Notification{notify(event.UserID, "Bem-vindo ao Vênus", message, model.TypeInfo)}

	case events.ReservationCreated:
		return []model.Notification{
			notify(event.HotelID, "Nova Reserva",
				fmt.Sprintf("%s reservou %s de %s a %s.", event.ClientName, event.RoomName, event.CheckIn, event.CheckOut), model.TypeInfo),
			notify(event.ClientID, "Reserva Solicitada",
				fmt.Sprintf("Sua reserva no %s aguarda confirmação.", event.HotelName), model.TypeInfo),
		}

	case events.ReservationStatusChanged:
		switch event.Status {
		case "CONFIRMED":
			return []model.Notification{notify(event.ClientID, "Reserva Confirmada",
				fmt.Sprintf("Sua reserva no %s foi confirmada!", event.HotelName), model.TypeSuccess)}
		case "COMPLETED":
			return []model.Notification{notify(event.ClientID, "Estadia Concluída",
				fmt.Sprintf("Obrigado por se hospedar no %s!", event.HotelName), model.TypeInfo)}
		case "CANCELLED":
			if event.ActorID == event.ClientID {
				return []model.Notification{notify(event.HotelID, "Reserva Cancelada",
					fmt.Sprintf("%s cancelou a reserva de %s a %s.", event.ClientName, event.CheckIn, event.CheckOut), model.TypeWarning)}
			}

			return []model.Notification{notify(event.ClientID, "Reserva Cancelada",
				fmt.Sprintf("Sua reserva no %s foi cancelada.", event.HotelName), model.TypeWarning)}
		case "PENDING":
			return []model.Notification{notify(event.ClientID, "Reserva Pendente",
				fmt.Sprintf("Sua reserva no %s voltou a aguardar confirmação.", event.HotelName), model.TypeInfo)}
		}
	}

	return nil
}
