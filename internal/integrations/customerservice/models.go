package customerservice

import "github.com/m04kA/M4Y-RentalService/pkg/types"

// Driver данные водителя из CustomerService
type Driver struct {
	CustomerID      int64       `json:"customer_id"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	BirthDate       types.Date  `json:"birth_date"`
	LicenseNumber   string      `json:"license_number"`
	LicenseIssuedAt *types.Date `json:"license_issued_at"`
}

// AgeOn возвращает полный возраст водителя на указанную дату
func (d *Driver) AgeOn(date types.Date) int {
	birth := d.BirthDate.Time()
	on := date.Time()

	age := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		age--
	}
	return age
}

// ErrorResponse модель ошибки от CustomerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
