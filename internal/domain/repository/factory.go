package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Accounts() AccountRepository
	Carts() CartRepository
	Plants() PlantRepository
	Orders() OrderRepository
	Recycling() RecyclingRepository
}
