package repository

// Repositories conjunto de repositorios atados a una misma transacción.
type Repositories struct {
	Companies   CompanyRepository
	Memberships MembershipRepository
	Users       UserRepository
	Teams       TeamRepository
}
