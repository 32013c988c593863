package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/infras/otel"
	accountService "venus/internal/domains/account/service"
	"venus/internal/domains/reservation/model"
	"venus/internal/domains/reservation/model/dto"
	"venus/internal/domains/reservation/repository"
	roomService "venus/internal/domains/room/service"
	"venus/internal/events"
	"venus/shared"
	"venus/shared/cache"
	"venus/shared/constant"
	"venus/shared/failure"
	"venus/shared/metrics"
	gModel "venus/shared/model"
	"venus/shared/timezone"
)

const (
	cacheListHotelReservations  = "reservation:hotel"
	cacheListClientReservations = "reservation:client"

	transitionApplied  = "applied"
	transitionRejected = "rejected"
	transitionNoop     = "noop"
)

type Reservation interface {
	ListByHotel(ctx context.Context, hotelID string) ([]dto.ReservationResponse, error)
	ListByClient(ctx context.Context, clientID string) ([]dto.ReservationResponse, error)
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
}

type serviceImpl struct {
	repo      repository.Reservation
	accounts  accountService.Account
	rooms     roomService.Room
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Reservation,
	accounts accountService.Account,
	rooms roomService.Room,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		accounts:  accounts,
		rooms:     rooms,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) ListByHotel(ctx context.Context, hotelID string) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListByHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if actorID, role := shared.ActorFromContext(ctx); role == constant.RoleHotel && actorID != hotelID {
		return nil, model.ErrNotParticipant
	}

	return s.cachedList(ctx, shared.BuildCacheKey(cacheListHotelReservations, hotelID), func() ([]model.Reservation, error) {
		return s.repo.ListByHotel(ctx, hotelID)
	})
}

// ListByClient returns only the client's reservations unless the demo
// fallback is on, in which case a client with none sees every reservation.
func (s *serviceImpl) ListByClient(ctx context.Context, clientID string) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListByClient")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if actorID, role := shared.ActorFromContext(ctx); role == constant.RoleClient && actorID != clientID {
		return nil, model.ErrNotParticipant
	}

	return s.cachedList(ctx, shared.BuildCacheKey(cacheListClientReservations, clientID), func() ([]model.Reservation, error) {
		reservations, err := s.repo.ListByClient(ctx, clientID)
		if err != nil || len(reservations) > 0 || !s.cfg.App.Demo.ClientReservationFallback {
			return reservations, err
		}

		log.Debug().Str("client_id", clientID).Msg("client has no reservations, falling back to all")

		return s.repo.List(ctx)
	})
}

// Create books a room for the calling client. Names and the hotel image are
// copied onto the reservation.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	clientID, role := shared.ActorFromContext(ctx)
	if clientID == constant.Empty {
		return res, failure.Unauthorized("sign in to book a room") //nolint:wrapcheck
	}

	if role != constant.RoleClient {
		return res, failure.Forbidden("only clients book rooms") //nolint:wrapcheck
	}

	checkIn, err := timezone.ParseDate(req.CheckIn)
	if err != nil {
		return res, failure.BadRequestFromString("checkIn must be a YYYY-MM-DD date") //nolint:wrapcheck
	}

	checkOut, err := timezone.ParseDate(req.CheckOut)
	if err != nil {
		return res, failure.BadRequestFromString("checkOut must be a YYYY-MM-DD date") //nolint:wrapcheck
	}

	nights := timezone.NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return res, failure.BadRequestFromString("checkOut must be after checkIn") //nolint:wrapcheck
	}

	room, err := s.rooms.Get(ctx, req.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !room.IsAvailable {
		return res, model.ErrRoomUnavailable
	}

	hotel, err := s.accounts.Get(ctx, room.HotelID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	client, err := s.accounts.Get(ctx, clientID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	now := timezone.Now()
	reservation := model.Reservation{
		ID:         uuid.NewString(),
		HotelID:    hotel.ID,
		HotelName:  hotel.Name,
		ClientID:   client.ID,
		ClientName: client.Name,
		RoomID:     room.ID,
		RoomName:   room.Name,
		CheckIn:    timezone.FormatDate(checkIn),
		CheckOut:   timezone.FormatDate(checkOut),
		TotalPrice: float64(nights) * room.Price,
		Metadata:   gModel.NewMetadata(now, clientID),
	}

	if hotel.Hotel != nil {
		if hotel.Hotel.BusinessName != constant.Empty {
			reservation.HotelName = hotel.Hotel.BusinessName
		}

		if len(hotel.Hotel.Images) > 0 {
			reservation.HotelImage = hotel.Hotel.Images[0]
		}
	}

	if client.Client != nil && client.Client.Surname != constant.Empty {
		reservation.ClientName = strings.TrimSpace(client.Name + " " + client.Client.Surname)
	}

	reservation.MoveTo(model.StatusPending, now, clientID)

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	metrics.ReservationsCreatedTotal.Inc()
	s.invalidate(ctx, reservation)

	_ = s.publisher.Publish(ctx, eventFrom(events.ReservationCreated, reservation, clientID, role))

	res.FromModel(reservation)

	return res, nil
}

// UpdateStatus moves reservation id to the requested status. An unknown id
// and an unchanged status are no-ops. Hotels act on their own reservations;
// clients may only cancel theirs.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	next := model.Status(req.Status)
	if !next.Valid() {
		return failure.BadRequestFromString("unknown reservation status") //nolint:wrapcheck
	}

	actorID, role := shared.ActorFromContext(ctx)

	var from model.Status

	reservation, found, err := s.repo.Apply(ctx, id, func(reservation *model.Reservation) (bool, error) {
		from = reservation.Status

		if err := authorize(*reservation, actorID, role, next); err != nil {
			return false, err
		}

		if reservation.Status == next {
			return false, nil
		}

		if s.cfg.App.StrictStatusTransitions && !reservation.Status.CanTransitionTo(next) {
			return false, model.ErrInvalidTransition
		}

		reservation.MoveTo(next, timezone.Now(), actorID)

		return true, nil
	})
	if err != nil {
		var fail *failure.Failure
		if errors.As(err, &fail) {
			metrics.ReservationTransitionsTotal.WithLabelValues(string(from), string(next), transitionRejected).Inc()
			log.Warn().Str("reservation_id", id).Str("from", string(from)).Str("to", string(next)).Str("actor", actorID).Msg(fail.Message)

			return err //nolint:wrapcheck
		}

		log.Error().Err(err).Str("reservation_id", id).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	if !found || from == next {
		log.Debug().Str("reservation_id", id).Bool("found", found).Msg("reservation status unchanged")
		metrics.ReservationTransitionsTotal.WithLabelValues(string(from), string(next), transitionNoop).Inc()

		return nil
	}

	metrics.ReservationTransitionsTotal.WithLabelValues(string(from), string(next), transitionApplied).Inc()
	s.invalidate(ctx, reservation)

	event := eventFrom(events.ReservationStatusChanged, reservation, actorID, role)
	event.FromStatus = string(from)
	_ = s.publisher.Publish(ctx, event)

	return nil
}

func authorize(reservation model.Reservation, actorID, role string, next model.Status) error {
	switch {
	case actorID == constant.Empty:
		return nil
	case role == constant.RoleHotel:
		if reservation.HotelID != actorID {
			return model.ErrNotParticipant
		}
	case role == constant.RoleClient:
		if reservation.ClientID != actorID {
			return model.ErrNotParticipant
		}

		if next != model.StatusCancelled && next != reservation.Status {
			return model.ErrClientOnlyCancel
		}
	default:
		return model.ErrNotParticipant
	}

	return nil
}

func (s *serviceImpl) cachedList(ctx context.Context, cacheKey string, load func() ([]model.Reservation, error)) (res []dto.ReservationResponse, err error) {
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	reservations, err := load()
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservations")

		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	res = dto.FromModels(reservations)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save reservations to cache")
	}

	return res, nil
}

// invalidate drops every client list as well, since the demo fallback makes
// them depend on all reservations.
func (s *serviceImpl) invalidate(ctx context.Context, reservation model.Reservation) {
	shared.InvalidateCaches(ctx, s.cache,
		shared.BuildCacheKey(cacheListHotelReservations, reservation.HotelID),
		cacheListClientReservations,
	)
}

func eventFrom(kind events.Kind, reservation model.Reservation, actorID, role string) events.Event {
	return events.Event{
		Kind:          kind,
		ActorID:       actorID,
		ActorRole:     role,
		ReservationID: reservation.ID,
		HotelID:       reservation.HotelID,
		HotelName:     reservation.HotelName,
		ClientID:      reservation.ClientID,
		ClientName:    reservation.ClientName,
		RoomName:      reservation.RoomName,
		CheckIn:       reservation.CheckIn,
		CheckOut:      reservation.CheckOut,
		Status:        string(reservation.Status),
	}
}
