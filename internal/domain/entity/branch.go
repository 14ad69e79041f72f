package entity

import "time"

// Branch sucursal o departamento. EmployeeCount es el número de empleados activos.
type Branch struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	EmployeeCount int       `json:"employee_count"`
	CoordinatorID string    `json:"coordinator_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AdjustEmployeeCount suma delta al contador sin bajar de cero.
func (b *Branch) AdjustEmployeeCount(delta int) {
	b.EmployeeCount += delta
	if b.EmployeeCount < 0 {
		b.EmployeeCount = 0
	}
}
