package registry

// StaffRoleDoctor роль врача в реестре персонала
const StaffRoleDoctor = "doctor"

// Staff сотрудник больницы из реестра
type Staff struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
	IsActive       bool   `json:"is_active"`
}

// IsDoctor возвращает true, если сотрудник является врачом
func (s *Staff) IsDoctor() bool {
	return s.Role == StaffRoleDoctor
}

// FullName имя и фамилия
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Patient пациент из реестра
type Patient struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от реестра
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
