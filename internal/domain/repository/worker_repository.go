package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
)

// WorkerRepository define el puerto de persistencia para Worker (DIP).
type WorkerRepository interface {
	Create(worker *entity.Worker) error
	GetByID(id string) (*entity.Worker, error)
	GetByMatricule(matricule string) (*entity.Worker, error)
	Update(worker *entity.Worker) error
	// List ordena por nombre ascendente (mismo orden que el directorio de equipo).
	List(limit, offset int) ([]*entity.Worker, error)
	// RatesByID devuelve la tarifa horaria por WorkerID; los trabajadores sin
	// tarifa configurada no aparecen en el mapa.
	RatesByID() (map[string]decimal.Decimal, error)
}
