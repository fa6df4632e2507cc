package cmd

import "sapcli/internal/adt"

func init() {
	registerSourceKind(sourceKind{
		name:  "program",
		short: "Manage ABAP programs",
		new: func(conn adt.Connector, name, pkg string, meta *adt.CoreData) sourceObject {
			return adt.NewProgram(conn, name, pkg, meta)
		},
	})
}
