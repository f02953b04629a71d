package employee

import "context"

// DirectorySource lists the employee directory. It is served by the
// upstream directory service or by the local employees table.
type DirectorySource interface {
	List(ctx context.Context) ([]Employee, error)
}

type EmployeeRepository interface {
	DirectorySource
	GetByCode(ctx context.Context, code string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
