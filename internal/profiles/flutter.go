package profiles

import "github.com/conduit-lang/materialize/internal/materialize"

// Placeholders present in the Flutter template tree
const (
	FlutterNameToken    = "flutter_master_template"
	FlutterPackageToken = "com.example.template"
	FlutterTitleToken   = "Flutter Master Template"
)

// FlutterProfileName is the name of the default profile
const FlutterProfileName = "flutter"

// Flutter returns the profile for the Clean Architecture Flutter starter
func Flutter() *Profile {
	return &Profile{
		Name:        FlutterProfileName,
		Description: "Flutter starter app with Android, iOS, macOS and Linux runners",
		Rules: []materialize.Rule{
			{
				Token: FlutterNameToken,
				Value: materialize.ValueProjectName,
				Files: []string{"pubspec.yaml"},
			},
			{
				Token: FlutterPackageToken,
				Value: materialize.ValuePackageIdentifier,
				Files: []string{
					"pubspec.yaml",
					// build files
					"android/app/build.gradle",
					"android/app/build.gradle.kts",
					"ios/Runner.xcodeproj/project.pbxproj",
					"macos/Runner.xcodeproj/project.pbxproj",
					"macos/Runner/Configs/AppInfo.xcconfig",
					"linux/CMakeLists.txt",
					// manifests
					"android/app/src/*/AndroidManifest.xml",
					// entry points
					"android/app/src/main/kotlin/**/MainActivity.kt",
					"android/app/src/main/java/**/MainActivity.java",
				},
			},
			{
				Token: FlutterTitleToken,
				Value: materialize.ValueProjectName,
				Files: []string{"ios/Runner/Info.plist"},
			},
			{
				Token: FlutterTitleToken,
				Value: materialize.ValueProjectName,
				Files: []string{"lib/main.dart"},
			},
		},
		Cleanup: []string{"create_project.sh"},
	}
}
