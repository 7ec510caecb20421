// Command idrepoctl administers the identity repository.
//
// # Quick Start
//
//	export DATABASE_URL=postgres://postgres@localhost/idrepo?sslmode=disable
//
//	# Create or upgrade the schema
//	idrepoctl db migrate
//
//	# Run the admin server
//	idrepoctl server --port 8000
//
//	# Delete a security question and clear it from every user
//	idrepoctl delete security-questions sq1
//
//	# Show what each deletion does to referring entities
//	idrepoctl cascade list
//
// Configuration is read from $IDREPO_CONFIG_PATH/idrepo.yml and IDREPO_*
// environment variables; see "idrepoctl configuration show".
package main
