package seeder

// Defaults returns the seeders run by the seed command, in dependency order.
func Defaults(admin AdminSeeder) []Seeder {
	return []Seeder{
		admin,
		CoursesSeeder{},
		JobsSeeder{AdminEmail: admin.Email},
	}
}
