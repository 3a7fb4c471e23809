package service

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// OrganizationServiceInterface defines the interface for the organization service
type OrganizationServiceInterface interface {
	Create(req *CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByName(name string) (*OrganizationResponse, error)
	List() ([]OrganizationResponse, error)
	Update(oldName string, req *UpdateOrganizationRequest, adminEmail string) (*OrganizationResponse, error)
	Delete(name string, adminEmail string) error
}
