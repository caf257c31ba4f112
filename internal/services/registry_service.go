package services

import (
	"context"
	"strings"

	"angkot/internal/domain"
	"angkot/internal/repositories"
	"angkot/internal/utils"
)

// RegistryService manages the driver and passenger rosters. Drivers are a
// precondition for recording trips; passenger registration is informational.
type RegistryService struct {
	Store repositories.Storage
}

func (s RegistryService) AddDriver(ctx context.Context, name string, chatID int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ValidationError{Msg: "Nama driver tidak boleh kosong."}
	}
	if err := s.Store.SaveDriver(ctx, name, chatID); err != nil {
		utils.LogEvent("", "registry", "add_driver_error", err.Error())
		return domain.InternalError{Msg: "gagal menyimpan data driver", Err: err}
	}
	return nil
}

func (s RegistryService) DriverList(ctx context.Context, chatID int64) ([]string, error) {
	drivers, err := s.Store.GetDrivers(ctx, chatID)
	if err != nil {
		utils.LogEvent("", "registry", "driver_list_error", err.Error())
		return nil, domain.InternalError{Msg: "gagal membaca data driver", Err: err}
	}
	return drivers, nil
}

func (s RegistryService) AddPassenger(ctx context.Context, name string, chatID int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ValidationError{Msg: "Nama penumpang tidak boleh kosong."}
	}
	if err := s.Store.SavePassenger(ctx, name, chatID); err != nil {
		utils.LogEvent("", "registry", "add_passenger_error", err.Error())
		return domain.InternalError{Msg: "gagal menyimpan data penumpang", Err: err}
	}
	return nil
}

func (s RegistryService) PassengerList(ctx context.Context, chatID int64) ([]string, error) {
	passengers, err := s.Store.GetPassengers(ctx, chatID)
	if err != nil {
		utils.LogEvent("", "registry", "passenger_list_error", err.Error())
		return nil, domain.InternalError{Msg: "gagal membaca data penumpang", Err: err}
	}
	return passengers, nil
}
