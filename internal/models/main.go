package models

// ModelRegistry lists every model AutoMigrate should create in development.
// Production schemas come from the SQL files under migrations/.
var ModelRegistry = []interface{}{
	&WaitlistEmail{},
	&PageView{},
	&UserInteraction{},
}
