// Package service contains the application's use-case layer. Services
// orchestrate the domain objects, the generation boundary, and the store
// interfaces; HTTP handlers stay thin and delegate here.
package service
