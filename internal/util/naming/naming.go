// Package naming provides consistent naming for provisioned AWS resources.
//
// All resources are derived from the application name so that a repeat
// run finds and reuses what a previous run created, and so that a
// teardown can locate everything by name.
package naming

import "fmt"

func Repository(app string) string {
	return app
}

func SecurityGroup(app string) string {
	return fmt.Sprintf("%s-sg", app)
}

func Instance(app string) string {
	return fmt.Sprintf("%s-server", app)
}

func LogGroup(app string) string {
	return fmt.Sprintf("/matchframe/%s", app)
}

func Container(app string) string {
	return app
}

func PrivateKeyFile(keyName string) string {
	return fmt.Sprintf("%s.pem", keyName)
}
