package terms

// builtin is the default dictionary. Keys are listed once; aliases include
// abbreviations, transliterations and Cyrillic lookalike spellings.
var builtin = []Group{
	// Programming languages.
	{Key: "python", Aliases: []string{"пайтон", "питон"}},
	{Key: "java"},
	{Key: "javascript", Aliases: []string{"js"}},
	{Key: "typescript", Aliases: []string{"ts"}},
	{Key: "c++", Aliases: []string{"с++"}},
	{Key: "c#", Aliases: []string{"с#"}},
	{Key: "go", Aliases: []string{"golang"}},
	{Key: "php"},
	{Key: "ruby"},
	{Key: "swift"},
	{Key: "kotlin"},
	{Key: "scala"},
	{Key: "rust"},
	{Key: "r"},
	{Key: "bash"},
	{Key: "powershell"},
	{Key: "perl"},
	{Key: "objective-c", Aliases: []string{"objective c"}},
	{Key: "haskell"},
	{Key: "clojure"},
	{Key: "erlang"},
	{Key: "dart"},
	{Key: "flutter"},
	{Key: "elixir"},
	{Key: "cobol"},
	{Key: "fortran"},
	{Key: "groovy"},
	{Key: "assembly", Aliases: []string{"ассемблер"}},
	{Key: "pascal"},
	{Key: "delphi"},
	{Key: "prolog"},

	// Databases.
	{Key: "sql"},
	{Key: "postgresql", Aliases: []string{"postgres", "postgresql_sql"}},
	{Key: "mysql", Aliases: []string{"mariadb", "mysql_sql"}},
	{Key: "sqlite", Aliases: []string{"sqlite_sql"}},
	{Key: "mongodb", Aliases: []string{"mongo"}},
	{Key: "redis"},
	{Key: "cassandra"},
	{Key: "elasticsearch"},
	{Key: "opensearch"},
	{Key: "neo4j", Aliases: []string{"graphdb"}},
	{Key: "hbase"},
	{Key: "dynamodb"},
	{Key: "cosmosdb"},
	{Key: "couchdb"},
	{Key: "oracle"},
	{Key: "mssql", Aliases: []string{"sqlserver"}},
	{Key: "firebird"},
	{Key: "clickhouse"},
	{Key: "influxdb"},
	{Key: "cockroachdb"},
	{Key: "rethinkdb"},
	{Key: "vertica"},
	{Key: "snowflake"},
	{Key: "greenplum"},
	{Key: "teradata"},
	{Key: "dgraph"},
	{Key: "bigtable"},
	{Key: "redshift"},

	// Frameworks and libraries.
	{Key: "django"},
	{Key: "fastapi"},
	{Key: "flask"},
	{Key: "spring", Aliases: []string{"springboot", "springframework", "spring boot", "spring framework"}},
	{Key: "hibernate"},
	{Key: "react", Aliases: []string{"reactjs"}},
	{Key: "vue", Aliases: []string{"vuejs"}},
	{Key: "angular", Aliases: []string{"angularjs"}},
	{Key: "express", Aliases: []string{"expressjs"}},
	{Key: "nest", Aliases: []string{"nestjs"}},
	{Key: "aspnet", Aliases: []string{"asp.net"}},
	{Key: "dotnet", Aliases: []string{".net"}},
	{Key: "wpf"},
	{Key: "rails", Aliases: []string{"rubyonrails"}},
	{Key: "laravel"},
	{Key: "symfony"},
	{Key: "pandas"},
	{Key: "numpy"},
	{Key: "scikit-learn", Aliases: []string{"sklearn"}},
	{Key: "tensorflow", Aliases: []string{"tf"}},
	{Key: "pytorch", Aliases: []string{"torch"}},
	{Key: "keras"},
	{Key: "pyspark"},
	{Key: "hadoop"},
	{Key: "spark"},
	{Key: "junit"},
	{Key: "testng"},
	{Key: "jest"},
	{Key: "mocha"},
	{Key: "pytest"},
	{Key: "selenium"},
	{Key: "cypress"},
	{Key: "cucumber"},
	{Key: "bootstrap"},
	{Key: "jquery"},
	{Key: "redux"},
	{Key: "rxjs"},
	{Key: "backbone"},
	{Key: "svelte"},
	{Key: "ember", Aliases: []string{"emberjs"}},
	{Key: "next", Aliases: []string{"nextjs"}},
	{Key: "nuxt", Aliases: []string{"nuxtjs"}},
	{Key: "gatsby", Aliases: []string{"gatsbyjs"}},
	{Key: "tailwind", Aliases: []string{"tailwindcss"}},
	{Key: "sass", Aliases: []string{"scss"}},
	{Key: "less"},
	{Key: "stylus"},
	{Key: "webpack"},
	{Key: "babel"},
	{Key: "parcel"},
	{Key: "rollup"},
	{Key: "eslint"},
	{Key: "prettier"},
	{Key: "stylelint"},
	{Key: "socketio"},
	{Key: "webrtc"},
	{Key: "graphene"},
	{Key: "apollo"},
	{Key: "gqlgen"},
	{Key: "relay"},
	{Key: "remix"},

	// Version control.
	{Key: "git", Aliases: []string{"github", "gitlab", "bitbucket"}},
	{Key: "svn", Aliases: []string{"subversion"}},
	{Key: "mercurial", Aliases: []string{"hg"}},
	{Key: "perforce"},

	// Containers and orchestration.
	{Key: "docker"},
	{Key: "kubernetes", Aliases: []string{"k8s"}},
	{Key: "helm"},
	{Key: "openshift", Aliases: []string{"oc"}},
	{Key: "istio"},
	{Key: "podman"},
	{Key: "containerd"},
	{Key: "docker-compose"},
	{Key: "swarm", Aliases: []string{"docker swarm"}},
	{Key: "linkerd"},
	{Key: "consul"},
	{Key: "nomad"},
	{Key: "rancher"},
	{Key: "mesos"},
	{Key: "knative"},
	{Key: "portainer"},

	// CI/CD.
	{Key: "jenkins"},
	{Key: "gitlab-ci", Aliases: []string{"gitlab ci"}},
	{Key: "github-actions", Aliases: []string{"github actions"}},
	{Key: "circleci"},
	{Key: "travis", Aliases: []string{"travisci", "travis ci"}},
	{Key: "teamcity"},
	{Key: "bamboo"},
	{Key: "gocd"},
	{Key: "argo", Aliases: []string{"argocd"}},
	{Key: "tekton"},
	{Key: "concourse"},
	{Key: "spinnaker"},
	{Key: "jenkins-x", Aliases: []string{"jenkins x"}},
	{Key: "woodpecker"},
	{Key: "drone"},
	{Key: "codeship"},
	{Key: "semaphore"},

	// Cloud providers and services.
	{Key: "aws", Aliases: []string{"amazon", "amazon web services"}},
	{Key: "azure", Aliases: []string{"microsoft azure"}},
	{Key: "gcp", Aliases: []string{"google cloud", "google cloud platform"}},
	{Key: "heroku"},
	{Key: "digitalocean"},
	{Key: "linode"},
	{Key: "vultr"},
	{Key: "ibm-cloud", Aliases: []string{"ibm cloud"}},
	{Key: "oracle-cloud", Aliases: []string{"oracle cloud", "oci"}},
	{Key: "alibaba-cloud", Aliases: []string{"alibaba cloud", "aliyun"}},
	{Key: "cloudflare"},
	{Key: "scaleway"},
	{Key: "openstack"},
	{Key: "ovh"},
	{Key: "hetzner"},
	{Key: "netlify"},
	{Key: "vercel"},
	{Key: "serverless", Aliases: []string{"безсерверный"}},
	{Key: "lambda"},
	{Key: "ec2"},
	{Key: "s3"},
	{Key: "route53"},
	{Key: "cloudfront"},
	{Key: "ecs"},
	{Key: "eks"},
	{Key: "rds"},
	{Key: "cloudwatch"},
	{Key: "iam"},
	{Key: "vpc"},
	{Key: "azuredevops", Aliases: []string{"azure devops"}},
	{Key: "gke"},
	{Key: "gcf"},
	{Key: "gcs"},

	// Protocols, APIs and data formats.
	{Key: "rest", Aliases: []string{"restful"}},
	{Key: "graphql"},
	{Key: "grpc"},
	{Key: "soap"},
	{Key: "webhook"},
	{Key: "websocket"},
	{Key: "mqtt"},
	{Key: "amqp"},
	{Key: "stomp"},
	{Key: "tcp"},
	{Key: "udp"},
	{Key: "http"},
	{Key: "https"},
	{Key: "http2", Aliases: []string{"http/2"}},
	{Key: "http3", Aliases: []string{"http/3"}},
	{Key: "quic"},
	{Key: "ftp"},
	{Key: "sftp"},
	{Key: "ssh"},
	{Key: "telnet"},
	{Key: "dns"},
	{Key: "dhcp"},
	{Key: "smtp"},
	{Key: "pop3"},
	{Key: "imap"},
	{Key: "ldap"},
	{Key: "oauth"},
	{Key: "oauth2"},
	{Key: "openid", Aliases: []string{"openid connect"}},
	{Key: "saml"},
	{Key: "kerberos"},
	{Key: "rpc"},
	{Key: "jsonrpc"},
	{Key: "xmlrpc"},
	{Key: "thrift"},
	{Key: "avro"},
	{Key: "protobuf"},
	{Key: "messagepack"},
	{Key: "json"},
	{Key: "xml"},
	{Key: "yaml", Aliases: []string{"yml"}},
	{Key: "toml"},
	{Key: "ini"},
	{Key: "csv"},
	{Key: "tsv"},
	{Key: "parquet"},
	{Key: "orc"},
	{Key: "swagger"},
	{Key: "openapi"},
	{Key: "raml"},
	{Key: "ipfs"},
	{Key: "bittorrent"},

	// Monitoring, logging and tracing.
	{Key: "prometheus"},
	{Key: "grafana"},
	{Key: "kibana"},
	{Key: "logstash"},
	{Key: "fluentd"},
	{Key: "loki"},
	{Key: "datadog"},
	{Key: "newrelic", Aliases: []string{"new relic"}},
	{Key: "sentry"},
	{Key: "jaeger"},
	{Key: "zipkin"},
	{Key: "dynatrace"},
	{Key: "splunk"},
	{Key: "nagios"},
	{Key: "zabbix"},
	{Key: "telegraf"},
	{Key: "elk", Aliases: []string{"elastic stack", "elk stack"}},
	{Key: "graylog"},
	{Key: "sumologic", Aliases: []string{"sumo logic"}},
	{Key: "graphite"},
	{Key: "statsd"},
	{Key: "opentelemetry"},
	{Key: "opentracing"},

	// Message brokers and queues.
	{Key: "kafka"},
	{Key: "rabbitmq"},
	{Key: "activemq"},
	{Key: "zeromq", Aliases: []string{"zmq"}},
	{Key: "nats"},
	{Key: "pulsar"},
	{Key: "nsq"},
	{Key: "mosquitto"},
	{Key: "ibmmq", Aliases: []string{"ibm mq"}},
	{Key: "servicebus", Aliases: []string{"azure service bus"}},
	{Key: "eventbridge", Aliases: []string{"aws eventbridge"}},
	{Key: "pubsub", Aliases: []string{"google pubsub"}},
	{Key: "sqs"},
	{Key: "sns"},
	{Key: "kinesis", Aliases: []string{"aws kinesis"}},
	{Key: "eventhub", Aliases: []string{"event hub", "azure event hub"}},

	// Natural languages.
	{Key: "english", Aliases: []string{"английский", "английского", "англ"}},
	{Key: "german", Aliases: []string{"немецкий"}},
	{Key: "french", Aliases: []string{"французский"}},
	{Key: "spanish", Aliases: []string{"испанский"}},
	{Key: "italian", Aliases: []string{"итальянский"}},
	{Key: "chinese", Aliases: []string{"китайский"}},
	{Key: "japanese", Aliases: []string{"японский"}},

	// Methodologies and practices.
	{Key: "agile"},
	{Key: "scrum"},
	{Key: "kanban"},
	{Key: "devops"},
	{Key: "ci/cd", Aliases: []string{"cicd"}},
	{Key: "ci", Aliases: []string{"continuous integration"}},
	{Key: "cd", Aliases: []string{"continuous delivery", "continuous deployment"}},
	{Key: "tdd"},
	{Key: "bdd"},
	{Key: "ddd"},
	{Key: "xp", Aliases: []string{"extreme programming"}},
	{Key: "lean"},
	{Key: "waterfall"},
	{Key: "iterative", Aliases: []string{"итеративный", "итеративная"}},
	{Key: "oop", Aliases: []string{"ооп", "oops"}},
	{Key: "sre"},
	{Key: "devsecops"},
	{Key: "gitflow"},
	{Key: "trunk-based", Aliases: []string{"trunk based"}},
	{Key: "monolith", Aliases: []string{"монолит"}},
	{Key: "microservices", Aliases: []string{"микросервисы"}},
	{Key: "iac", Aliases: []string{"infrastructure as code"}},
	{Key: "codeowners"},
	{Key: "code-review", Aliases: []string{"code review", "сode review", "peer review"}},
	{Key: "pair-programming", Aliases: []string{"pair programming"}},
	{Key: "safe", Aliases: []string{"scaled agile"}},
	{Key: "mob-programming", Aliases: []string{"mob programming"}},
}
