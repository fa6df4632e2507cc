package cmd

import "sapcli/internal/adt"

func init() {
	registerSourceKind(sourceKind{
		name:  "class",
		short: "Manage ABAP classes",
		new: func(conn adt.Connector, name, pkg string, meta *adt.CoreData) sourceObject {
			return adt.NewClass(conn, name, pkg, meta)
		},
	})
}
