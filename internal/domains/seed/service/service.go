package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/infras/otel"
	accountModel "venus/internal/domains/account/model"
	accountRepository "venus/internal/domains/account/repository"
	notificationRepository "venus/internal/domains/notification/repository"
	notificationService "venus/internal/domains/notification/service"
	reservationModel "venus/internal/domains/reservation/model"
	reservationRepository "venus/internal/domains/reservation/repository"
	roomModel "venus/internal/domains/room/model"
	roomRepository "venus/internal/domains/room/repository"
	"venus/shared/constant"
	gModel "venus/shared/model"
	"venus/shared/password"
)

const (
	demoPassword = "123"
	seededBy     = constant.ContextSystem
)

type Seed interface {
	Run(ctx context.Context) error
}

type serviceImpl struct {
	accounts      accountRepository.Account
	rooms         roomRepository.Room
	reservations  reservationRepository.Reservation
	notifications notificationRepository.Notification
	cfg           *config.Config
	otel          otel.Otel
}

func New(
	accounts accountRepository.Account,
	rooms roomRepository.Room,
	reservations reservationRepository.Reservation,
	notifications notificationRepository.Notification,
	cfg *config.Config,
	otel otel.Otel,
) Seed {
	return &serviceImpl{
		accounts:      accounts,
		rooms:         rooms,
		reservations:  reservations,
		notifications: notifications,
		cfg:           cfg,
		otel:          otel,
	}
}

// Run fills each empty bucket with the demonstration dataset. Buckets that
// already hold entries are left untouched.
func (s *serviceImpl) Run(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".seed.Run")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !s.cfg.App.Demo.Seed {
		log.Info().Msg("demo seed disabled")

		return nil
	}

	existing, err := s.accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if len(existing) == 0 {
		credential, err := password.Hash(demoPassword)
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		if err = s.report("users", func() (bool, error) { return s.accounts.SeedIfEmpty(ctx, Users(credential)) }); err != nil {
			return err
		}
	}

	if err = s.report("rooms", func() (bool, error) { return s.rooms.SeedIfEmpty(ctx, Rooms()) }); err != nil {
		return err
	}

	if err = s.report("reservations", func() (bool, error) { return s.reservations.SeedIfEmpty(ctx, Reservations()) }); err != nil {
		return err
	}

	return s.report("notifications", func() (bool, error) {
		return s.notifications.SeedIfEmpty(ctx, notificationService.DemoSet("c1"))
	})
}

func (s *serviceImpl) report(bucket string, seed func() (bool, error)) error {
	seeded, err := seed()
	if err != nil {
		log.Error().Err(err).Str("bucket", bucket).Msg("failed to seed bucket")

		return fmt.Errorf("failed to seed %s: %w", bucket, err)
	}

	if seeded {
		log.Info().Str("bucket", bucket).Msg("bucket seeded with demonstration data")
	}

	return nil
}

func seededAt(year int, month time.Month, day int) gModel.Metadata {
	return gModel.NewMetadata(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), seededBy)
}

func Users(credential string) []accountModel.User {
	grandVenusPrice := 450.0
	dunasPrice := 180.0

	return []accountModel.User{
		accountModel.NewHotel("h1", "hotel@venus.com", "Carlos Hoteleiro", credential, accountModel.HotelProfile{
			Phone:                  "98999999999",
			OwnerNationalID:        "00000000000",
			BusinessName:           "Grand Vênus Resort",
			Address:                "Av. Beira Rio, 100",
			Neighborhood:           "Centro",
			City:                   "Barreirinhas",
			PostalCode:             "65590-000",
			BusinessRegistrationID: "11111111000111",
			RoomCount:              50,
			Category:               "Resort",
			Amenities:              []string{"Wi-Fi", "Piscina", "Café da Manhã", "Ar Condicionado", "Academia"},
			Description:            "Luxo e conforto nas margens do Rio Preguiças.",
			BasePricePerNight:      &grandVenusPrice,
			Images:                 []string{"https://picsum.photos/800/600"},
			MapsURL:                "https://maps.google.com/?q=Barreirinhas",
			CheckInTime:            "14:00",
			CheckOutTime:           "12:00",
			CancellationPolicy:     "Cancelamento gratuito até 48 horas antes do check-in.",
		}, seededAt(2024, time.May, 1)),
		accountModel.NewHotel("h2", "pousada@venus.com", "Maria Pousada", credential, accountModel.HotelProfile{
			Phone:                  "98988888888",
			OwnerNationalID:        "22222222222",
			BusinessName:           "Pousada das Dunas",
			Address:                "Rua das Areias, 42",
			Neighborhood:           "Canto",
			City:                   "Barreirinhas",
			PostalCode:             "65590-000",
			BusinessRegistrationID: "22222222000122",
			RoomCount:              12,
			Category:               "Pousada",
			Amenities:              []string{"Wi-Fi", "Café da Manhã"},
			Description:            "Simplicidade e aconchego perto dos lençóis.",
			BasePricePerNight:      &dunasPrice,
			Images:                 []string{"https://picsum.photos/800/601"},
			MapsURL:                "https://maps.google.com/?q=Barreirinhas",
			CheckInTime:            "13:00",
			CheckOutTime:           "11:00",
			CancellationPolicy:     "Não reembolsável.",
		}, seededAt(2024, time.May, 1)),
		accountModel.NewClient("c1", "cliente@venus.com", "João", credential, accountModel.ClientProfile{
			Surname:    "Silva",
			Phone:      "98977777777",
			NationalID: "33333333333",
		}, seededAt(2024, time.May, 20)),
	}
}

func Rooms() []roomModel.Room {
	return []roomModel.Room{
		{
			ID:          "r1",
			HotelID:     "h1",
			Name:        "Suíte Master Ocean",
			Capacity:    2,
			Price:       550,
			Description: "Vista para o rio, banheira de hidromassagem e cama king size.",
			Images:      []string{"https://picsum.photos/400/300"},
			IsAvailable: true,
			Amenities:   []string{"Ar Condicionado", "Wi-Fi", "Banheira", "TV 50\""},
			Metadata:    seededAt(2024, time.May, 1),
		},
		{
			ID:          "r2",
			HotelID:     "h1",
			Name:        "Quarto Standard",
			Capacity:    3,
			Price:       350,
			Description: "Conforto ideal para pequenas famílias.",
			Images:      []string{"https://picsum.photos/401/300"},
			IsAvailable: true,
			Amenities:   []string{"Ar Condicionado", "Wi-Fi", "TV 32\""},
			Metadata:    seededAt(2024, time.May, 1),
		},
	}
}

func Reservations() []reservationModel.Reservation {
	return []reservationModel.Reservation{
		{
			ID:         "res1",
			HotelID:    "h1",
			HotelName:  "Grand Vênus Resort",
			HotelImage: "https://picsum.photos/800/600",
			ClientID:   "c1",
			ClientName: "João Silva",
			RoomID:     "r1",
			RoomName:   "Suíte Master Ocean",
			CheckIn:    "2024-06-10",
			CheckOut:   "2024-06-15",
			TotalPrice: 2750,
			Status:     reservationModel.StatusConfirmed,
			Metadata:   seededAt(2024, time.June, 1),
		},
		{
			ID:         "res2",
			HotelID:    "h1",
			HotelName:  "Grand Vênus Resort",
			HotelImage: "https://picsum.photos/800/600",
			ClientID:   "c1",
			ClientName: "Ana Souza",
			RoomID:     "r2",
			RoomName:   "Quarto Standard",
			CheckIn:    "2024-07-20",
			CheckOut:   "2024-07-22",
			TotalPrice: 700,
			Status:     reservationModel.StatusPending,
			Metadata:   seededAt(2024, time.June, 5),
		},
	}
}
