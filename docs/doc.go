// Package docs provides generated OpenAPI documentation.
//
// Formscan API
//
//	@title			Formscan API
//	@version		1.0
//	@description	Document field extraction API: upload a PDF page and extract named fields with a vision model.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/formscan
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/formscan/serve.go -o ./swagger --parseDependency --parseInternal
